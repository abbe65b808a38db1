package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/kitelabs/kitebot-api/internal/auth"
	"github.com/kitelabs/kitebot-api/internal/license"
	"github.com/kitelabs/kitebot-api/internal/models"
	"gorm.io/gorm"
)

// AdminHandler serves the privileged operations. Every call is authorized
// through the gate before any other input is looked at.
type AdminHandler struct {
	db   *gorm.DB
	gate *auth.AdminGate
}

func NewAdminHandler(db *gorm.DB, gate *auth.AdminGate) *AdminHandler {
	return &AdminHandler{db: db, gate: gate}
}

func (h *AdminHandler) authorize(adminKey string) error {
	if !h.gate.Authorize(adminKey) {
		return huma.Error403Forbidden("Unauthorized. Admin key mismatch.")
	}
	return nil
}

type AdminUser struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Key              string `json:"key"`
	KeyExpiry        string `json:"key_expiry"`
	Status           string `json:"status"`
	IsActive         bool   `json:"is_active"`
	LastIP           string `json:"last_ip"`
	LastKeyIssueDate string `json:"last_key_issue_date"`
}

type ListUsersRequest struct {
	Body struct {
		AdminKey string `json:"admin_key,omitempty"`
	}
}

type ListUsersResponse struct {
	Body struct {
		Status     string      `json:"status"`
		TotalUsers int         `json:"total_users"`
		Users      []AdminUser `json:"users"`
	}
}

func (h *AdminHandler) HandleListUsers(ctx context.Context, input *ListUsersRequest) (*ListUsersResponse, error) {
	if err := h.authorize(input.Body.AdminKey); err != nil {
		return nil, err
	}

	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list users")
	}

	now := time.Now().UTC()
	list := make([]AdminUser, 0, len(users))
	for i := range users {
		u := &users[i]
		lastIssue := "unknown"
		if u.LastKeyIssueDate != nil {
			lastIssue = u.LastKeyIssueDate.Format(timeLayout)
		}
		list = append(list, AdminUser{
			ID:               u.ID,
			Username:         u.Username,
			Email:            u.Email,
			Key:              strOr(u.Key, ""),
			KeyExpiry:        formatExpiry(u.KeyExpiry),
			Status:           license.StatusFor(u, now).String(),
			IsActive:         u.IsActive,
			LastIP:           strOr(u.LastIP, "unknown"),
			LastKeyIssueDate: lastIssue,
		})
	}

	res := &ListUsersResponse{}
	res.Body.Status = "success"
	res.Body.TotalUsers = len(list)
	res.Body.Users = list
	return res, nil
}

type InvalidateKeyRequest struct {
	Body struct {
		AdminKey      string `json:"admin_key,omitempty"`
		KeyOrUsername string `json:"key_or_username,omitempty"`
	}
}

type InvalidateKeyResponse struct {
	Body struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Username string `json:"username"`
		Key      string `json:"key"`
	}
}

// HandleInvalidateKey revokes a key by key value or username. Revoking an
// already-revoked key reports a warning, not an error.
func (h *AdminHandler) HandleInvalidateKey(ctx context.Context, input *InvalidateKeyRequest) (*InvalidateKeyResponse, error) {
	if err := h.authorize(input.Body.AdminKey); err != nil {
		return nil, err
	}
	if input.Body.KeyOrUsername == "" {
		return nil, huma.Error400BadRequest("Key or username is required")
	}

	var user models.User
	err := h.db.Where("key = ? OR username = ?", input.Body.KeyOrUsername, input.Body.KeyOrUsername).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound(fmt.Sprintf("Key or username '%s' not found", input.Body.KeyOrUsername))
		}
		return nil, huma.Error500InternalServerError("Failed to look up user")
	}

	res := &InvalidateKeyResponse{}
	res.Body.Username = user.Username
	res.Body.Key = strOr(user.Key, "")

	if !user.IsActive {
		res.Body.Status = "warning"
		res.Body.Message = fmt.Sprintf("Key for user '%s' is already revoked", user.Username)
		return res, nil
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&user).Update("is_active", false).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to revoke key")
	}

	res.Body.Status = "success"
	res.Body.Message = fmt.Sprintf("Key for user '%s' was revoked", user.Username)
	return res, nil
}

type GenerateKeyRequest struct {
	Body struct {
		AdminKey         string `json:"admin_key,omitempty"`
		Duration         string `json:"duration,omitempty" doc:"Key lifetime, e.g. 1d, 7d, 30d or lifetime"`
		AssignToUsername string `json:"assign_to_username,omitempty" doc:"Existing user to attach the key to; omit to create a standalone license"`
	}
}

type GenerateKeyResponse struct {
	Status int
	Body   struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Key     string `json:"key"`
		Expiry  string `json:"expiry"`
	}
}

// HandleGenerateKey issues a key with an admin-chosen lifetime, bypassing
// the trial gate. It either re-keys an existing user or creates a
// placeholder account that only carries the license.
func (h *AdminHandler) HandleGenerateKey(ctx context.Context, input *GenerateKeyRequest) (*GenerateKeyResponse, error) {
	if err := h.authorize(input.Body.AdminKey); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expiry, err := license.ParseDuration(input.Body.Duration, now)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid duration format (e.g. 1d, 7d, 30d, lifetime)")
	}

	key, err := license.Generate()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}

	res := &GenerateKeyResponse{}
	res.Body.Key = key
	res.Body.Expiry = expiry.Format(timeLayout)

	if input.Body.AssignToUsername != "" {
		var user models.User
		err := h.db.Where("username = ?", input.Body.AssignToUsername).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, huma.Error404NotFound(fmt.Sprintf("User '%s' not found", input.Body.AssignToUsername))
			}
			return nil, huma.Error500InternalServerError("Failed to look up user")
		}

		err = h.db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&user).Updates(map[string]interface{}{
				"key":                 key,
				"key_expiry":          expiry,
				"last_key_issue_date": now,
			}).Error
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to assign key")
		}

		res.Status = http.StatusOK
		res.Body.Status = "success"
		res.Body.Message = fmt.Sprintf("New key assigned to user '%s'", input.Body.AssignToUsername)
		return res, nil
	}

	// Standalone license: a placeholder account owns the key.
	tag := strings.ReplaceAll(key, "-", "")[:8]
	username := "admin_lic_" + tag

	pwBytes := make([]byte, 16)
	if _, err := rand.Read(pwBytes); err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}
	hash, err := auth.HashPassword(hex.EncodeToString(pwBytes))
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}

	user := models.User{
		Username:         username,
		Email:            username + "@adminlicense.com",
		PasswordHash:     hash,
		Key:              &key,
		KeyExpiry:        &expiry,
		IsActive:         true,
		LastKeyIssueDate: &now,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error409Conflict("Generated key collided, please retry")
		}
		return nil, huma.Error500InternalServerError("Failed to create license")
	}

	res.Status = http.StatusCreated
	res.Body.Status = "success"
	res.Body.Message = fmt.Sprintf("New %s license key generated", input.Body.Duration)
	return res, nil
}

type AdminFeedback struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ListFeedbackRequest struct {
	Body struct {
		AdminKey string `json:"admin_key,omitempty"`
	}
}

type ListFeedbackResponse struct {
	Body struct {
		Status        string          `json:"status"`
		TotalFeedback int             `json:"total_feedback"`
		Feedback      []AdminFeedback `json:"feedback"`
	}
}

func (h *AdminHandler) HandleListFeedback(ctx context.Context, input *ListFeedbackRequest) (*ListFeedbackResponse, error) {
	if err := h.authorize(input.Body.AdminKey); err != nil {
		return nil, err
	}

	var entries []models.Feedback
	if err := h.db.Preload("User").Find(&entries).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list feedback")
	}

	list := make([]AdminFeedback, 0, len(entries))
	for _, e := range entries {
		username := e.User.Username
		if e.User.ID == 0 {
			username = "[deleted user]"
		}
		list = append(list, AdminFeedback{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  username,
			Type:      e.Type,
			Content:   e.Content,
			Timestamp: e.CreatedAt.Format(timeLayout),
		})
	}

	res := &ListFeedbackResponse{}
	res.Body.Status = "success"
	res.Body.TotalFeedback = len(list)
	res.Body.Feedback = list
	return res, nil
}
