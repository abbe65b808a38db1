package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/kitelabs/kitebot-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Feedback{}); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	return db
}

func ctxWithIP(ip string) context.Context {
	return context.WithValue(context.Background(), ClientIPKey, ip)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected a status error, got %v", err)
	}
	return se.GetStatus()
}

func createUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
