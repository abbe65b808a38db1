package auth

import "crypto/subtle"

// AdminGate authorizes privileged operations against a shared secret.
// Handlers receive it as an explicit capability rather than reading
// configuration themselves.
type AdminGate struct {
	secret []byte
}

func NewAdminGate(secret string) *AdminGate {
	return &AdminGate{secret: []byte(secret)}
}

// Authorize reports whether the presented key matches the configured
// secret. The comparison is constant-time. An empty configured secret
// denies everything.
func (g *AdminGate) Authorize(key string) bool {
	if len(g.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), g.secret) == 1
}
