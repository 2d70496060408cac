package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/marketpulse/market-pulse-be/internal/api/handlers"
	"github.com/marketpulse/market-pulse-be/internal/auth"
	"github.com/marketpulse/market-pulse-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	identityService services.IdentityServiceProvider,
	assetService services.AssetServiceProvider,
	codec *auth.Codec,
	users auth.UserFinder,
	corsOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService)
	assetHandler := handlers.NewAssetHandler(assetService)

	requireAuth := auth.Middleware(codec, users)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Get("/verify-email", authHandler.VerifyEmail)
			r.Post("/resend-verification", authHandler.ResendVerification)
			r.Post("/login", authHandler.Login)
			r.Post("/forget-password", authHandler.ForgetPassword)

			// Protected profile routes
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.GetMe)
				r.Put("/update-user", authHandler.UpdateMe)
			})
		})

		r.Route("/market", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/assets", assetHandler.GetAll)
			r.Get("/assets/{symbol}", assetHandler.Get)
		})
	})

	return r
}
