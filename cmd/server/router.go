package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hatembr/identity-api/internal/api"
	apiMiddleware "github.com/hatembr/identity-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It uses the application's services to build the handlers.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.credentialStore, app.passwordHasher, app.jwtService)
	userHandler := api.NewUserHandler(app.userService)
	credentialHandler := api.NewCredentialHandler(app.credService)
	addressHandler := api.NewAddressHandler(app.addressService)
	tokenHandler := api.NewVerificationTokenHandler(app.tokenService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoint (public)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Put("/", userHandler.Update)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.UpdateByID)
			r.Delete("/{id}", userHandler.Delete)
			r.Get("/username/{username}", userHandler.GetByUsername)
		})

		r.Route("/credentials", func(r chi.Router) {
			r.Get("/", credentialHandler.List)
			r.Post("/", credentialHandler.Create)
			r.Put("/", credentialHandler.Update)
			r.Get("/{id}", credentialHandler.Get)
			r.Put("/{id}", credentialHandler.UpdateByID)
			r.Delete("/{id}", credentialHandler.Delete)
			r.Get("/username/{username}", credentialHandler.GetByUsername)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", addressHandler.List)
			r.Post("/", addressHandler.Create)
			r.Put("/", addressHandler.Update)
			r.Get("/{id}", addressHandler.Get)
			r.Put("/{id}", addressHandler.UpdateByID)
			r.Delete("/{id}", addressHandler.Delete)
		})

		r.Route("/verification-tokens", func(r chi.Router) {
			r.Get("/", tokenHandler.List)
			r.Post("/", tokenHandler.Create)
			r.Put("/", tokenHandler.Update)
			r.Get("/{id}", tokenHandler.Get)
			r.Put("/{id}", tokenHandler.UpdateByID)
			r.Delete("/{id}", tokenHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
