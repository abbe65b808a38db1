package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/kitelabs/kitebot-api/internal/auth"
	"github.com/kitelabs/kitebot-api/internal/models"
	"gorm.io/gorm"
)

type LoginHandler struct {
	db       *gorm.DB
	sessions *auth.Sessions
}

func NewLoginHandler(db *gorm.DB, sessions *auth.Sessions) *LoginHandler {
	return &LoginHandler{db: db, sessions: sessions}
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email,omitempty"`
		Password string `json:"password,omitempty"`
	}
}

type LoginResponse struct {
	Body struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Username string `json:"username"`
		Key      string `json:"key"`
		Expiry   string `json:"expiry"`
		Token    string `json:"token"`
	}
}

func (h *LoginHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(input.Body.Email)
	password := input.Body.Password

	if email == "" || password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}

	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error401Unauthorized("Invalid email or password")
		}
		return nil, huma.Error500InternalServerError("Failed to look up account")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}

	token, err := h.sessions.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate session token")
	}

	res := &LoginResponse{}
	res.Body.Status = "success"
	res.Body.Message = "Login successful"
	res.Body.Username = user.Username
	res.Body.Key = strOr(user.Key, "")
	res.Body.Expiry = formatExpiry(user.KeyExpiry)
	res.Body.Token = token
	return res, nil
}
