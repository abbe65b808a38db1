package database

import (
	"log"

	"github.com/kitelabs/kitebot-api/internal/config"
	"github.com/kitelabs/kitebot-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database: Postgres when DATABASE_URL is set
// (the hosted deployment), a local sqlite file otherwise. TranslateError is
// enabled so unique constraint violations surface as gorm.ErrDuplicatedKey
// regardless of driver.
func Connect(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		log.Printf("DATABASE_URL not set, using local sqlite database at %s", cfg.DatabasePath)
		dialector = sqlite.Open(cfg.DatabasePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(&models.User{}, &models.Feedback{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
