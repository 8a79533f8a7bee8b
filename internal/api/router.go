package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/apperr"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/config"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/health"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/logging"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/metrics"
)

// Deps collects everything the router mounts.
type Deps struct {
	Auth        *auth.Handlers
	AuthService *auth.Service
	Anime       *AnimeHandlers
	Movies      *MovieHandlers
	KDramas     *KDramaHandlers
	Games       *GameHandlers
	Websites    *WebsiteHandlers
	Credentials *CredentialHandlers
	Genshin     *GenshinHandlers
	Health      *health.Handler
}

// NewRouter wires the full HTTP surface: public health/metrics and auth
// entry points, then the cookie-authenticated /api/v1 tree.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	eh := apperr.NewErrorHandler(cfg.IsProduction())

	r.Use(chimiddleware.RealIP)
	r.Use(apperr.RequestIDMiddleware)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", deps.Health.LivenessHandler)
	r.Get("/health/ready", deps.Health.ReadinessHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are brute-force targets.
			r.Group(func(r chi.Router) {
				r.Use(httprate.LimitByIP(10, 1*time.Minute))
				r.Post("/register", eh.HandleFunc(deps.Auth.Register))
				r.Post("/login", eh.HandleFunc(deps.Auth.Login))
			})
			r.Post("/refresh", eh.HandleFunc(deps.Auth.Refresh))
			r.Post("/logout", eh.HandleFunc(deps.Auth.Logout))

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthService.Authenticate)
				r.Use(auth.RequireAuth)
				r.Get("/me", eh.HandleFunc(deps.Auth.Me))
				r.Patch("/me", eh.HandleFunc(deps.Auth.UpdateProfile))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthService.Authenticate)
			r.Use(auth.RequireAuth)

			mountCollection(r, eh, "/anime", deps.Anime.List, deps.Anime.Get, deps.Anime.Create, deps.Anime.Update, deps.Anime.Delete)
			mountCollection(r, eh, "/movies", deps.Movies.List, deps.Movies.Get, deps.Movies.Create, deps.Movies.Update, deps.Movies.Delete)
			mountCollection(r, eh, "/kdramas", deps.KDramas.List, deps.KDramas.Get, deps.KDramas.Create, deps.KDramas.Update, deps.KDramas.Delete)
			mountCollection(r, eh, "/games", deps.Games.List, deps.Games.Get, deps.Games.Create, deps.Games.Update, deps.Games.Delete)
			mountCollection(r, eh, "/websites", deps.Websites.List, deps.Websites.Get, deps.Websites.Create, deps.Websites.Update, deps.Websites.Delete)
			mountCollection(r, eh, "/credentials", deps.Credentials.List, deps.Credentials.Get, deps.Credentials.Create, deps.Credentials.Update, deps.Credentials.Delete)

			r.Route("/genshin", func(r chi.Router) {
				r.Get("/account", eh.HandleFunc(deps.Genshin.GetAccount))
				r.Put("/account", eh.HandleFunc(deps.Genshin.PutAccount))
				mountCollection(r, eh, "/characters",
					deps.Genshin.ListCharacters, deps.Genshin.GetCharacter,
					deps.Genshin.CreateCharacter, deps.Genshin.UpdateCharacter, deps.Genshin.DeleteCharacter)
			})
		})
	})

	return r
}

func mountCollection(r chi.Router, eh *apperr.ErrorHandler, pattern string, list, get, create, update, del apperr.Handler) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", eh.HandleFunc(list))
		r.Post("/", eh.HandleFunc(create))
		r.Get("/{id}", eh.HandleFunc(get))
		r.Put("/{id}", eh.HandleFunc(update))
		r.Delete("/{id}", eh.HandleFunc(del))
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger := logging.Ctx(r.Context())
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
