package handlers

import "time"

const timeLayout = "2006-01-02 15:04:05"

func formatExpiry(t *time.Time) string {
	if t == nil {
		return "Unlimited"
	}
	return t.Format(timeLayout)
}

func strOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
