package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/kitelabs/kitebot-api/internal/models"
	"github.com/kitelabs/kitebot-api/internal/notifier"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewFeedbackHandler(db *gorm.DB, n notifier.Notifier) *FeedbackHandler {
	return &FeedbackHandler{db: db, notifier: n}
}

type SubmitFeedbackRequest struct {
	Body struct {
		Key     string `json:"key,omitempty"`
		Type    string `json:"type,omitempty"`
		Content string `json:"content,omitempty"`
	}
}

type SubmitFeedbackResponse struct {
	Body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
}

func (h *FeedbackHandler) HandleSubmit(ctx context.Context, input *SubmitFeedbackRequest) (*SubmitFeedbackResponse, error) {
	if input.Body.Key == "" || input.Body.Type == "" || input.Body.Content == "" {
		return nil, huma.Error400BadRequest("Key, type and content are required")
	}

	var user models.User
	err := h.db.Where("key = ?", input.Body.Key).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error401Unauthorized("Feedback requires a valid key")
		}
		return nil, huma.Error500InternalServerError("Failed to look up key")
	}

	feedback := models.Feedback{
		UserID:  user.ID,
		Type:    input.Body.Type,
		Content: input.Body.Content,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&feedback).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to save feedback")
	}

	if h.notifier != nil {
		h.notifier.NotifyFeedback(user, feedback)
	}

	res := &SubmitFeedbackResponse{}
	res.Body.Status = "success"
	res.Body.Message = "Feedback received, thank you!"
	return res, nil
}
