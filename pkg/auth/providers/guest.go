package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const guestTokenPrefix = "guest:"

var _ AuthProvider = &GuestAuthProvider{}

// GuestAuthProvider issues anonymous identities. An empty token mints
// a fresh UUID identity; a "guest:<id>" token resumes one, which lets
// a reconnecting client keep its seat before it ever signs in.
type GuestAuthProvider struct{}

func NewGuestAuthProvider() *GuestAuthProvider {
	return &GuestAuthProvider{}
}

func (p *GuestAuthProvider) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	id := strings.TrimPrefix(token, guestTokenPrefix)
	if token != "" && id == token {
		return nil, fmt.Errorf("not a guest token")
	}
	if id == "" {
		id = uuid.New().String()
	}
	return &Identity{
		UserID: id,
		Name:   "Guest-" + shortID(id),
	}, nil
}

func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
