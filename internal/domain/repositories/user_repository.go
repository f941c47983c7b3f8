package repositories

import (
	"context"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByExternalRef(ctx context.Context, externalRef string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Touch(ctx context.Context, id uuid.UUID) error
}
