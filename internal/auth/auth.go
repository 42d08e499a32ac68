// Package auth protects mutating API routes with a bearer token. The token
// is stored bcrypt-hashed in the config so the plaintext never touches disk.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingToken is returned when no Authorization header is present.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when the presented token does not match.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Guard validates bearer tokens against a bcrypt hash. A zero-value Guard
// (empty hash) allows everything, for local demo use.
type Guard struct {
	tokenHash string
}

// NewGuard builds a guard from a bcrypt token hash. An empty hash disables
// authentication.
func NewGuard(tokenHash string) *Guard {
	return &Guard{tokenHash: tokenHash}
}

// Enabled reports whether the guard enforces authentication.
func (g *Guard) Enabled() bool { return g.tokenHash != "" }

// Authorize checks the Authorization header of a request.
func (g *Guard) Authorize(r *http.Request) error {
	if !g.Enabled() {
		return nil
	}
	token := extractBearer(r)
	if token == "" {
		return ErrMissingToken
	}
	if bcrypt.CompareHashAndPassword([]byte(g.tokenHash), []byte(token)) != nil {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects unauthorized requests with 401.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.Authorize(r); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HashToken bcrypt-hashes a plaintext token for storage in the config.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
