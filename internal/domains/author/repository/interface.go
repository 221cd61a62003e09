package repository

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/author/model"
)

// Repository is the data-access contract for pseudonyms.
type Repository interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	// ForUser lists all pseudonyms owned by an identity, ordered by name.
	ForUser(ctx context.Context, userID uuid.UUID) ([]model.Author, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
