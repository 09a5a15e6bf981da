package auth

import (
	"context"
	"errors"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider is the identity-provider surface the portal consumes. Sessions
// are created and invalidated on the provider side; the portal only resolves
// them from tokens.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*internal.Session, error)
	SignIn(ctx context.Context, email, password string) (*internal.Session, error)
	OAuthURL(provider, redirectTo string) (string, error)
	SignOut(ctx context.Context, accessToken string) error
	GetSession(ctx context.Context, accessToken string) (*internal.Session, error)
}
