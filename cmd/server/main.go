package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kitelabs/kitebot-api/internal/auth"
	"github.com/kitelabs/kitebot-api/internal/config"
	"github.com/kitelabs/kitebot-api/internal/database"
	"github.com/kitelabs/kitebot-api/internal/handlers"
	"github.com/kitelabs/kitebot-api/internal/license"
	"github.com/kitelabs/kitebot-api/internal/notifier"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()
	if cfg.AdminSecret == "" {
		log.Printf("ADMIN_SECRET not set, admin endpoints will reject all requests")
	}

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Handlers
	var n notifier.Notifier
	discordNotifier, err := notifier.NewDiscordNotifier(cfg)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	} else {
		n = discordNotifier
	}

	trialGate := license.NewTrialGate(db, cfg.TrialWindowDays)
	adminGate := auth.NewAdminGate(cfg.AdminSecret)
	sessions := auth.NewSessions(cfg.JWTSecret)

	registrationHandler := handlers.NewRegistrationHandler(db, trialGate, n)
	loginHandler := handlers.NewLoginHandler(db, sessions)
	keyHandler := handlers.NewKeyHandler(db)
	feedbackHandler := handlers.NewFeedbackHandler(db, n)
	adminHandler := handlers.NewAdminHandler(db, adminGate)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, registrationHandler, loginHandler, keyHandler, feedbackHandler, adminHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
