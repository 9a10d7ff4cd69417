// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to AutoAtlas: the two
// database backends, sessions, Google OAuth, and the admin bootstrap.
type AppConfig struct {
	// MongoDB (document store: users, brands, events, banners, leads,
	// reviews, communities)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Postgres (read-only vehicle catalog plus the lead mirror)
	PostgresDSN string

	// Session management
	SessionKey    string // secret for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Google OAuth (the only sign-in method; no local credentials)
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for the OAuth callback
	BaseURL string

	// AdminEmail promotes (or pre-provisions) this account to admin on
	// startup so a fresh deploy has a way in.
	AdminEmail string

	// UpcomingLimit caps the public upcoming-events list.
	UpcomingLimit int
}
