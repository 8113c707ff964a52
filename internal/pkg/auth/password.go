// internal/pkg/auth/password.go
package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/freshmeals/web/internal/config"
)

// PasswordManager verifies the admin password. It works from a configured
// bcrypt hash, or lazily hashes a configured plaintext fallback on first
// use so the hash never has to be computed at startup.
type PasswordManager struct {
	config *config.Config

	mu   sync.Mutex
	hash string
}

// NewPasswordManager creates a password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		config: cfg,
		hash:   cfg.Admin.PasswordHash,
	}
}

// Verify checks a submitted password against the configured credential
func (p *PasswordManager) Verify(password string) bool {
	hash, err := p.ensureHash()
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword hashes a password using bcrypt with the configured cost
func (p *PasswordManager) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func (p *PasswordManager) ensureHash() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hash != "" {
		return p.hash, nil
	}

	hashed, err := p.HashPassword(p.config.Admin.Password)
	if err != nil {
		return "", err
	}
	p.hash = hashed
	return p.hash, nil
}
