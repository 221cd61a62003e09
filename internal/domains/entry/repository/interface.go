package repository

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/entry/model"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	Update(ctx context.Context, entry *model.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)

	// Recent lists entries that are not hidden, newest publish timestamp
	// first, optionally narrowed to one author.
	Recent(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*model.Entry, error)
}
