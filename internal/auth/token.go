// Package auth provides bearer credential plumbing for the HTTP transport.
package auth

import (
	"context"
	"sync"
)

// TokenManager supplies the bearer token attached to outgoing requests.
type TokenManager interface {
	// GetToken returns the current token.
	GetToken(ctx context.Context) (string, error)

	// SetToken replaces the current token.
	SetToken(token string)
}

// StaticTokenManager holds a fixed token, optionally replaced at runtime.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken implements TokenManager.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

// SetToken implements TokenManager.
func (m *StaticTokenManager) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

// TokenSourceFunc adapts a function into a read-only TokenManager, for
// callers that fetch credentials from an external store per request.
type TokenSourceFunc func(ctx context.Context) (string, error)

// GetToken implements TokenManager.
func (f TokenSourceFunc) GetToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// SetToken implements TokenManager. Replacing the token is not supported for
// function sources; the source remains authoritative.
func (f TokenSourceFunc) SetToken(token string) {}
