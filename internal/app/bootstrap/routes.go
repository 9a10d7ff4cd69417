// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/autoatlas-mx/autoatlas/internal/app/features/authgoogle"
	bannersfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/banners"
	brandadminsfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/brandadmins"
	brandsfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/brands"
	catalogapifeature "github.com/autoatlas-mx/autoatlas/internal/app/features/catalogapi"
	communitiesfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/communities"
	eventsfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/events"
	healthfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/health"
	leadsfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/leads"
	profilefeature "github.com/autoatlas-mx/autoatlas/internal/app/features/profile"
	reviewsfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/reviews"
	sessionfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/session"
	usersfeature "github.com/autoatlas-mx/autoatlas/internal/app/features/users"
	bannerstore "github.com/autoatlas-mx/autoatlas/internal/app/store/banners"
	brandadminstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brandadmins"
	brandstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brands"
	commentstore "github.com/autoatlas-mx/autoatlas/internal/app/store/comments"
	communitystore "github.com/autoatlas-mx/autoatlas/internal/app/store/communities"
	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	leadstore "github.com/autoatlas-mx/autoatlas/internal/app/store/leads"
	reviewstore "github.com/autoatlas-mx/autoatlas/internal/app/store/reviews"
	rsvpstore "github.com/autoatlas-mx/autoatlas/internal/app/store/rsvps"
	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"github.com/autoatlas-mx/autoatlas/internal/catalog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
// WAFFLE calls it after config, DB connections, schema setup, and
// Startup have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and profile
	// updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	db := deps.MongoDatabase
	users := userstore.New(db)
	brandAdmins := brandadminstore.New(db)
	brands := brandstore.New(db)
	events := eventstore.New(db)
	rsvps := rsvpstore.New(db)
	banners := bannerstore.New(db)
	leads := leadstore.New(db)
	reviews := reviewstore.New(db)
	comments := commentstore.New(db)
	communities := communitystore.New(db)
	catalogSvc := catalog.NewService(deps.CatalogDB)

	r := chi.NewRouter()

	// Loads the SessionUser into context for every request; handlers
	// read it through auth.CurrentUser and authz.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.CatalogDB, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authgooglefeature.NewHandler(users, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.SessionKey, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(authHandler))

	sessionHandler := sessionfeature.NewHandler(sessionMgr, logger)
	r.Mount("/session", sessionfeature.Routes(sessionHandler))

	profileHandler := profilefeature.NewHandler(users, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(users, brandAdmins, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	brandAdminsHandler := brandadminsfeature.NewHandler(brandAdmins, brands, logger)
	r.Mount("/brand-admins", brandadminsfeature.Routes(brandAdminsHandler, sessionMgr))

	brandsHandler := brandsfeature.NewHandler(brands, logger)
	r.Mount("/brands", brandsfeature.Routes(brandsHandler, sessionMgr))

	eventsHandler := eventsfeature.NewHandler(events, rsvps, appCfg.UpcomingLimit, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	bannersHandler := bannersfeature.NewHandler(banners, logger)
	r.Mount("/banners", bannersfeature.Routes(bannersHandler, sessionMgr))

	leadsHandler := leadsfeature.NewHandler(leads, catalogSvc, logger)
	r.Mount("/leads", leadsfeature.Routes(leadsHandler, sessionMgr))

	reviewsHandler := reviewsfeature.NewHandler(reviews, comments, logger)
	r.Mount("/reviews", reviewsfeature.Routes(reviewsHandler, sessionMgr))

	communitiesHandler := communitiesfeature.NewHandler(communities, logger)
	r.Mount("/communities", communitiesfeature.Routes(communitiesHandler, sessionMgr))

	catalogHandler := catalogapifeature.NewHandler(catalogSvc, logger)
	r.Mount("/catalog", catalogapifeature.Routes(catalogHandler))

	return r, nil
}
