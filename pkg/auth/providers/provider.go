package providers

import "context"

// AuthProvider resolves a client-presented token to a stable identity.
type AuthProvider interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// Identity is the resolved user behind a connection.
type Identity struct {
	UserID string `json:"uid"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}
