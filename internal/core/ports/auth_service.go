package ports

import (
	"context"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// RegisterInput carries the registration form. Username and Password are
// required; the rest are optional profile fields.
type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
	DOB      string
	Address  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and establishes a session, returning the
	// session token to be handed to the client.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the session identified by the token. Revoking an
	// already-dead session is not an error.
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, username string) (*domain.Profile, error)
}
