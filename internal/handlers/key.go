package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/kitelabs/kitebot-api/internal/license"
	"github.com/kitelabs/kitebot-api/internal/models"
	"gorm.io/gorm"
)

type KeyHandler struct {
	db *gorm.DB
}

func NewKeyHandler(db *gorm.DB) *KeyHandler {
	return &KeyHandler{db: db}
}

type CheckKeyRequest struct {
	Body struct {
		Key string `json:"key,omitempty"`
	}
}

type CheckKeyResponse struct {
	Body struct {
		Status        string `json:"status"`
		Message       string `json:"message"`
		Username      string `json:"username"`
		RemainingDays int    `json:"remaining_days"`
	}
}

// HandleCheck reports the validity of a key. Revocation takes precedence
// over expiry in the reported reason.
func (h *KeyHandler) HandleCheck(ctx context.Context, input *CheckKeyRequest) (*CheckKeyResponse, error) {
	if input.Body.Key == "" {
		return nil, huma.Error400BadRequest("Key is required")
	}

	var user models.User
	err := h.db.Where("key = ?", input.Body.Key).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Key not found")
		}
		return nil, huma.Error500InternalServerError("Failed to look up key")
	}

	now := time.Now().UTC()
	switch license.StatusFor(&user, now) {
	case license.StatusRevoked:
		return nil, huma.Error403Forbidden("Key has been revoked. Contact support.")
	case license.StatusExpired:
		return nil, huma.Error403Forbidden("Key has expired. A new key is required.")
	}

	res := &CheckKeyResponse{}
	res.Body.Status = "success"
	res.Body.Message = "Key is valid and active"
	res.Body.Username = user.Username
	res.Body.RemainingDays = license.RemainingDays(user.KeyExpiry, now)
	return res, nil
}
