package repository

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/license/model"
)

type LicenseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.License, error)

	// ListActive returns licenses open for selection, ordered by name.
	ListActive(ctx context.Context) ([]*model.License, error)

	// IsActive reports whether the license exists and has not been retired.
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}
