package repository

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/user/model"
)

// Repository is the data-access contract for identities.
type Repository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
