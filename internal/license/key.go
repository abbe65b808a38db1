// Package license implements the key lifecycle: generation, expiry
// computation and the validity state machine. It holds no HTTP or
// persistence concerns beyond the store-backed trial gate.
package license

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is returned for duration specs that are neither
// "lifetime" nor "<integer>d".
var ErrInvalidDuration = errors.New("invalid duration format (e.g. 1d, 7d, 30d, lifetime)")

const (
	// TrialPeriodDays is the lifetime of a key issued at self-registration.
	TrialPeriodDays = 3

	// UnlimitedDays is reported as the remaining lifetime of a key that
	// never expires.
	UnlimitedDays = 9999

	// LifetimeDuration is the duration spec mapping to the never-expires
	// sentinel.
	LifetimeDuration = "lifetime"
)

// lifetimeSentinel marks a key that never expires. Any expiry in year 9999
// is treated as unbounded.
var lifetimeSentinel = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Generate produces a key of four 4-hex-digit uppercase groups, e.g.
// A1B2-C3D4-E5F6-A7B8. Uniqueness is ultimately enforced by the store's
// unique index on the key column.
func Generate() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	raw := strings.ToUpper(hex.EncodeToString(buf))

	groups := make([]string, 0, 4)
	for i := 0; i < len(raw); i += 4 {
		groups = append(groups, raw[i:i+4])
	}
	return strings.Join(groups, "-"), nil
}

// TrialExpiry returns the expiry of a trial key issued at now.
func TrialExpiry(now time.Time) time.Time {
	return now.AddDate(0, 0, TrialPeriodDays)
}

// LifetimeSentinel returns the fixed far-future instant used as the
// "never expires" marker.
func LifetimeSentinel() time.Time {
	return lifetimeSentinel
}

// ParseDuration maps an admin duration spec to an expiry instant:
// "lifetime" to the sentinel, "<integer>d" to now + that many days.
// Anything else is ErrInvalidDuration.
func ParseDuration(spec string, now time.Time) (time.Time, error) {
	if spec == LifetimeDuration {
		return lifetimeSentinel, nil
	}
	if !strings.HasSuffix(spec, "d") {
		return time.Time{}, ErrInvalidDuration
	}
	days, err := strconv.Atoi(strings.TrimSuffix(spec, "d"))
	if err != nil {
		return time.Time{}, ErrInvalidDuration
	}
	return now.AddDate(0, 0, days), nil
}

// NeverExpires reports whether the expiry denotes an unbounded key.
func NeverExpires(expiry *time.Time) bool {
	return expiry == nil || expiry.Year() == lifetimeSentinel.Year()
}

// RemainingDays returns the whole days left until expiry, or UnlimitedDays
// for an unbounded key.
func RemainingDays(expiry *time.Time, now time.Time) int {
	if NeverExpires(expiry) {
		return UnlimitedDays
	}
	return int(expiry.Sub(now).Hours() / 24)
}
