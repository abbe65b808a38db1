package license

import (
	"time"

	"github.com/kitelabs/kitebot-api/internal/models"
	"gorm.io/gorm"
)

// DefaultTrialWindowDays is how long an origin stays blocked after a trial
// key was issued from it.
const DefaultTrialWindowDays = 30

// TrialGate decides whether a network origin may receive a new trial key.
// The decision is backed by the store so the window survives restarts.
type TrialGate struct {
	db     *gorm.DB
	window time.Duration
}

func NewTrialGate(db *gorm.DB, windowDays int) *TrialGate {
	if windowDays <= 0 {
		windowDays = DefaultTrialWindowDays
	}
	return &TrialGate{db: db, window: time.Duration(windowDays) * 24 * time.Hour}
}

// Allow reports whether origin may receive a trial key at now. An origin is
// blocked iff any user was issued a key from it strictly less than the
// window ago; an issuance exactly one window ago is eligible again.
func (g *TrialGate) Allow(origin string, now time.Time) (bool, error) {
	cutoff := now.Add(-g.window)

	var count int64
	err := g.db.Model(&models.User{}).
		Where("last_ip = ? AND last_key_issue_date > ?", origin, cutoff).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
