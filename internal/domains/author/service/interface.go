package service

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/author/model"
)

// Service is the business-logic contract for pseudonyms.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req model.CreateAuthorRequest) (*model.AuthorResponse, error)
	Update(ctx context.Context, userID, authorID uuid.UUID, req model.UpdateAuthorRequest) (*model.AuthorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	ForUser(ctx context.Context, userID uuid.UUID) ([]model.AuthorResponse, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
