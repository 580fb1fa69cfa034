package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/askstack/askstack/internal/iam"
	"github.com/askstack/askstack/internal/observability"
	"github.com/askstack/askstack/internal/questions"
	"github.com/askstack/askstack/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Authenticator    *iam.Authenticator
	IAMHandler       *iam.Handler
	UsersHandler     *users.Handler
	QuestionsHandler *questions.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with askstack defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(AuthRateLimiter())
			params.IAMHandler.MountPublicRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(params.Authenticator.Middleware)
			params.IAMHandler.MountProtectedRoutes(r)
		})
	})

	r.Route("/questions", func(r chi.Router) {
		params.QuestionsHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(params.Authenticator.Middleware)
			params.QuestionsHandler.MountProtectedRoutes(r)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(params.Authenticator.Middleware)
		params.UsersHandler.MountRoutes(r)
	})

	return r
}
