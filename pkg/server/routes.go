package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/pkg/auth"
)

const ReadHeaderTimeout = 5 * time.Second

const serviceName = "genie-admin-demo"

// AppState is shared by the demo API handlers.
type AppState struct {
	Config    *config.Config
	Backend   *Backend
	TokenAuth *jwtauth.JWTAuth
	TokenTTL  time.Duration
}

// NewAppState wires the backend to a token signer built from cfg.Demo.AuthSecret.
func NewAppState(cfg *config.Config, backend *Backend) (*AppState, error) {
	tokenAuth, err := auth.NewTokenAuth(cfg.Demo.AuthSecret)
	if err != nil {
		return nil, err
	}
	return &AppState{
		Config:    cfg,
		Backend:   backend,
		TokenAuth: tokenAuth,
		TokenTTL:  auth.DefaultTokenTTL,
	}, nil
}

// Create creates a new HTTP server with the given app state
func Create(appState *AppState) *http.Server {
	router := setupRouter(appState)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", appState.Config.Demo.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

func setupRouter(appState *AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, _ string) bool { return true },
		AllowedMethods:  []string{"GET", "POST", "PUT"},
		AllowedHeaders:  []string{"Authorization", "Content-Type"},
		ExposedHeaders:  []string{versionHeader},
	}))
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))

	router.Route("/api/v1/admin", func(r chi.Router) {
		r.Post("/login", LoginHandler(appState))

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTVerifier(appState.TokenAuth))
			r.Use(auth.Authenticator)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", ListUsersHandler(appState))
				r.Get("/search", SearchUsersHandler(appState))
				r.Get("/{userId}", GetUserHandler(appState))
			})
			r.Get("/suggestions/{userId}", GetSuggestionsHandler(appState))
			r.Route("/dates", func(r chi.Router) {
				r.Get("/", ListDatesHandler(appState))
				r.Post("/", CreateDateHandler(appState))
				r.Put("/{dateId}", UpdateDateHandler(appState))
			})
		})
	})

	return router
}
