// Package normalize centralizes canonicalization of user-supplied fields
// before they hit the database, so lookups and unique indexes behave
// consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or whitespace-only
// input normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Slug lowercases, trims, and collapses interior whitespace runs to single
// hyphens. It does not transliterate; slugs are expected to arrive mostly
// formed from the admin panel.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), "-")
}

// Role lowercases and trims a role value for comparison.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a lead status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
