package ports

import (
	"context"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence. Create must
// rely on a storage-level uniqueness constraint on username and surface
// violations as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
