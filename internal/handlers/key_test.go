package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kitelabs/kitebot-api/internal/license"
	"github.com/kitelabs/kitebot-api/internal/models"
)

func checkRequest(key string) *CheckKeyRequest {
	req := &CheckKeyRequest{}
	req.Body.Key = key
	return req
}

func TestHandleCheck_MissingKey(t *testing.T) {
	handler := NewKeyHandler(newTestDB(t))

	_, err := handler.HandleCheck(context.Background(), checkRequest(""))
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestHandleCheck_UnknownKey(t *testing.T) {
	handler := NewKeyHandler(newTestDB(t))

	_, err := handler.HandleCheck(context.Background(), checkRequest("AAAA-BBBB-CCCC-DDDD"))
	if status := statusOf(t, err); status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestHandleCheck_RevokedOverridesExpired(t *testing.T) {
	db := newTestDB(t)
	handler := NewKeyHandler(db)

	key := "AAAA-BBBB-CCCC-DDDD"
	past := time.Now().UTC().AddDate(0, 0, -1)
	createUser(t, db, models.User{
		Username:  "a",
		Email:     "a@x",
		Key:       &key,
		KeyExpiry: &past,
		IsActive:  false,
	})

	_, err := handler.HandleCheck(context.Background(), checkRequest(key))
	if status := statusOf(t, err); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if !strings.Contains(err.Error(), "revoked") {
		t.Errorf("expected revoked reason, got %q", err.Error())
	}
	if strings.Contains(err.Error(), "expired") {
		t.Errorf("revocation must win over expiry, got %q", err.Error())
	}
}

func TestHandleCheck_Expired(t *testing.T) {
	db := newTestDB(t)
	handler := NewKeyHandler(db)

	key := "AAAA-BBBB-CCCC-DDDD"
	past := time.Now().UTC().Add(-time.Hour)
	createUser(t, db, models.User{
		Username:  "a",
		Email:     "a@x",
		Key:       &key,
		KeyExpiry: &past,
		IsActive:  true,
	})

	_, err := handler.HandleCheck(context.Background(), checkRequest(key))
	if status := statusOf(t, err); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("expected expired reason, got %q", err.Error())
	}
}

func TestHandleCheck_ValidWithRemainingDays(t *testing.T) {
	db := newTestDB(t)
	handler := NewKeyHandler(db)

	key := "AAAA-BBBB-CCCC-DDDD"
	expiry := time.Now().UTC().Add(73 * time.Hour)
	createUser(t, db, models.User{
		Username:  "a",
		Email:     "a@x",
		Key:       &key,
		KeyExpiry: &expiry,
		IsActive:  true,
	})

	resp, err := handler.HandleCheck(context.Background(), checkRequest(key))
	if err != nil {
		t.Fatalf("HandleCheck returned error: %v", err)
	}
	if resp.Body.Username != "a" {
		t.Errorf("expected username a, got %q", resp.Body.Username)
	}
	if resp.Body.RemainingDays != 3 {
		t.Errorf("expected 3 remaining days, got %d", resp.Body.RemainingDays)
	}
}

func TestHandleCheck_LifetimeKey(t *testing.T) {
	db := newTestDB(t)
	handler := NewKeyHandler(db)

	key := "AAAA-BBBB-CCCC-DDDD"
	sentinel := license.LifetimeSentinel()
	createUser(t, db, models.User{
		Username:  "a",
		Email:     "a@x",
		Key:       &key,
		KeyExpiry: &sentinel,
		IsActive:  true,
	})

	resp, err := handler.HandleCheck(context.Background(), checkRequest(key))
	if err != nil {
		t.Fatalf("HandleCheck returned error: %v", err)
	}
	if resp.Body.RemainingDays != license.UnlimitedDays {
		t.Errorf("expected unbounded remaining days, got %d", resp.Body.RemainingDays)
	}
}
