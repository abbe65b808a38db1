package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/kitelabs/kitebot-api/internal/auth"
	"github.com/kitelabs/kitebot-api/internal/license"
	"github.com/kitelabs/kitebot-api/internal/models"
	"github.com/kitelabs/kitebot-api/internal/notifier"
	"gorm.io/gorm"
)

type RegistrationHandler struct {
	db       *gorm.DB
	gate     *license.TrialGate
	notifier notifier.Notifier
}

func NewRegistrationHandler(db *gorm.DB, gate *license.TrialGate, n notifier.Notifier) *RegistrationHandler {
	return &RegistrationHandler{db: db, gate: gate, notifier: n}
}

type RegisterRequest struct {
	Body struct {
		Username string `json:"username,omitempty" doc:"Desired username"`
		Email    string `json:"email,omitempty" doc:"Contact email"`
		Password string `json:"password,omitempty" doc:"Account password"`
	}
}

type RegisterResponse struct {
	Body struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Username string `json:"username"`
		Key      string `json:"key"`
		Expiry   string `json:"expiry"`
	}
}

// HandleRegister creates an account with a fresh trial key. Checks run in
// order: missing fields, origin rate limit, username/email uniqueness. The
// store's unique constraints remain the final authority at commit time.
func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	username := strings.TrimSpace(input.Body.Username)
	email := strings.TrimSpace(input.Body.Email)
	password := input.Body.Password

	if username == "" || email == "" || password == "" {
		return nil, huma.Error400BadRequest("Username, email and password are required")
	}

	origin, _ := ctx.Value(ClientIPKey).(string)
	now := time.Now().UTC()

	allowed, err := h.gate.Allow(origin, now)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to check trial eligibility")
	}
	if !allowed {
		return nil, huma.Error403Forbidden("A trial key was already issued from this address within the last 30 days")
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to check existing accounts")
	}
	if count > 0 {
		return nil, huma.Error409Conflict("Username or email already exists")
	}

	key, err := license.Generate()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to process password")
	}

	expiry := license.TrialExpiry(now)
	user := models.User{
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Key:              &key,
		KeyExpiry:        &expiry,
		IsActive:         true,
		LastIP:           &origin,
		LastKeyIssueDate: &now,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error409Conflict("Username or email already exists")
		}
		return nil, huma.Error500InternalServerError("Failed to create account")
	}

	if h.notifier != nil {
		h.notifier.NotifyRegistration(user)
	}

	res := &RegisterResponse{}
	res.Body.Status = "success"
	res.Body.Message = "Registration successful! A 3-day trial key was created."
	res.Body.Username = username
	res.Body.Key = key
	res.Body.Expiry = expiry.Format(timeLayout)
	return res, nil
}
