package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kitelabs/kitebot-api/internal/config"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, registration *RegistrationHandler, login *LoginHandler, key *KeyHandler, feedback *FeedbackHandler, admin *AdminHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(ClientIP)
	if cfg.EnableCORS {
		r.Use(CORS)
	}

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("KiteBot License API", "1.0.0")
	api := humachi.New(r, humaConfig)

	// Liveness probes hit both the root path and /health.
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}
	r.Get("/", ok)
	r.Get("/health", ok)

	// Public routes
	huma.Post(api, "/api/register", registration.HandleRegister, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Post(api, "/api/login", login.HandleLogin)
	huma.Post(api, "/api/check_key", key.HandleCheck)
	huma.Post(api, "/api/submit_feedback", feedback.HandleSubmit, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})

	// Admin routes, authorized per call inside the handlers
	huma.Post(api, "/api/admin/users", admin.HandleListUsers)
	huma.Post(api, "/api/admin/invalidate_key", admin.HandleInvalidateKey)
	huma.Post(api, "/api/admin/generate", admin.HandleGenerateKey)
	huma.Post(api, "/api/admin/feedback", admin.HandleListFeedback)
}
