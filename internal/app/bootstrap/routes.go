// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	articlesfeature "github.com/novariagames/novaria/internal/app/features/articles"
	factionsfeature "github.com/novariagames/novaria/internal/app/features/factions"
	feedbackfeature "github.com/novariagames/novaria/internal/app/features/feedback"
	healthfeature "github.com/novariagames/novaria/internal/app/features/health"
	profilefeature "github.com/novariagames/novaria/internal/app/features/profile"
	"github.com/novariagames/novaria/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The Novaria backend is a JSON
// API: a bearer-token verifier feeds the identity middleware, and each
// feature mounts its own subrouter under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewJWTVerifier(appCfg.TokenSecret, appCfg.TokenIssuer, logger)
	if err != nil {
		logger.Error("token verifier init failed", zap.Error(err))
		return nil, err
	}
	authn := auth.NewAuthenticator(verifier, logger)

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global identity middleware: decorates the context with the
	// caller's identity when a valid bearer token is present, rejects
	// invalid tokens, and lets anonymous requests through.
	r.Use(authn.LoadIdentity)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(r chi.Router) {
		factionsHandler := factionsfeature.NewHandler(db, logger)
		r.Mount("/factions", factionsfeature.Routes(factionsHandler, authn))

		profileHandler := profilefeature.NewHandler(db, logger)
		r.Mount("/profile", profilefeature.Routes(profileHandler, authn))

		articlesHandler := articlesfeature.NewHandler(db, logger)
		r.Mount("/articles", articlesfeature.Routes(articlesHandler, authn))

		feedbackHandler := feedbackfeature.NewHandler(db, logger)
		r.Mount("/feedback", feedbackfeature.Routes(feedbackHandler))
	})

	return r, nil
}
