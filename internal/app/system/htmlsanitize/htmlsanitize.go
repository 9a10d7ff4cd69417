// Package htmlsanitize strips dangerous markup from user-authored content
// (review bodies, comments, community posts) before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows basic formatting and safe links, nothing interactive.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	return p
}()

// Sanitize returns s with disallowed tags and attributes removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
