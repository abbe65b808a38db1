package license

import (
	"time"

	"github.com/kitelabs/kitebot-api/internal/models"
)

// Status is the validity state of an issued key.
type Status int

const (
	StatusActive Status = iota
	StatusRevoked
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusRevoked:
		return "revoked"
	case StatusExpired:
		return "expired"
	default:
		return "active"
	}
}

// StatusFor derives the key state of a user. Revocation takes precedence
// over expiry: an inactive user reports revoked even when the expiry has
// also passed. The "unknown key" case is the caller's lookup miss.
func StatusFor(u *models.User, now time.Time) Status {
	if !u.IsActive {
		return StatusRevoked
	}
	if u.KeyExpiry != nil && u.KeyExpiry.Before(now) {
		return StatusExpired
	}
	return StatusActive
}
