package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/author/repository"
	"diary-backend/pkg/markdown"
)

type authorService struct {
	repo repository.Repository
}

// NewAuthorService creates a new author service instance.
func NewAuthorService(repo repository.Repository) Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, userID uuid.UUID, req model.CreateAuthorRequest) (*model.AuthorResponse, error) {
	// Length and presence are the DTO's job; the service only normalizes.
	created, err := s.repo.Create(ctx, &model.Author{
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		BioText: req.BioText,
		Avatar:  req.Avatar,
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(created)
}

// Update mutates a pseudonym. Only the owning identity may do so.
func (s *authorService) Update(ctx context.Context, userID, authorID uuid.UUID, req model.UpdateAuthorRequest) (*model.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !a.OwnedBy(userID) {
		return nil, model.ErrNotOwner
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.BioText != nil {
		a.BioText = *req.BioText
	}
	if req.Avatar != nil {
		a.Avatar = req.Avatar
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	return s.toResponse(updated)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(a)
}

func (s *authorService) ForUser(ctx context.Context, userID uuid.UUID) ([]model.AuthorResponse, error) {
	authors, err := s.repo.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.AuthorResponse, 0, len(authors))
	for i := range authors {
		resp, err := s.toResponse(&authors[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *authorService) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountForUser(ctx, userID)
}

func (s *authorService) toResponse(a *model.Author) (*model.AuthorResponse, error) {
	bioHTML := ""
	if a.BioText != "" {
		html, err := markdown.Render(a.BioText)
		if err != nil {
			return nil, fmt.Errorf("failed to render biography: %w", err)
		}
		bioHTML = html
	}
	return a.ToResponse(bioHTML), nil
}
