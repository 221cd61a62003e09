package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authormodel "diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/entry/model"
	"diary-backend/internal/domains/entry/repository"
	"diary-backend/pkg/markdown"
)

const (
	hiddenTitle  = "This entry is hidden"
	hiddenBody   = "<p>This entry was hidden by a moderator.</p>"
	privateTitle = "This entry is private"
	privateBody  = "<p>This entry has not been published by its author.</p>"
)

// AuthorReader resolves pseudonym ownership for write and read paths.
type AuthorReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
}

type EntryService interface {
	Create(ctx context.Context, userID uuid.UUID, req *model.CreateEntryRequest) (*model.EntryDetailResponse, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, req *model.UpdateEntryRequest) (*model.EntryDetailResponse, error)
	Read(ctx context.Context, requester *uuid.UUID, entryID uuid.UUID) (*model.EntryDetailResponse, error)
	Recent(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*model.EntryResponse, error)
}

type entryService struct {
	entries repository.EntryRepository
	authors AuthorReader
}

func NewEntryService(entries repository.EntryRepository, authors AuthorReader) EntryService {
	return &entryService{entries: entries, authors: authors}
}

func (s *entryService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateEntryRequest) (*model.EntryDetailResponse, error) {
	if err := s.checkAuthorOwned(ctx, req.AuthorID, userID); err != nil {
		return nil, err
	}

	entry := &model.Entry{
		AuthorID: req.AuthorID,
		Title:    strings.TrimSpace(req.Title),
		Text:     req.Text,
	}
	entry.ApplyPrivate(req.Private, time.Now().UTC())

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return detail(entry, true)
}

func (s *entryService) Update(ctx context.Context, userID, entryID uuid.UUID, req *model.UpdateEntryRequest) (*model.EntryDetailResponse, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorOwned(ctx, entry.AuthorID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = strings.TrimSpace(*req.Title)
	}
	if req.Text != nil {
		entry.Text = *req.Text
	}
	if req.Private != nil {
		entry.ApplyPrivate(*req.Private, time.Now().UTC())
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return detail(entry, true)
}

func (s *entryService) Read(ctx context.Context, requester *uuid.UUID, entryID uuid.UUID) (*model.EntryDetailResponse, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	canEdit := false
	if requester != nil {
		author, err := s.authors.GetByID(ctx, entry.AuthorID)
		if err != nil {
			return nil, err
		}
		canEdit = author.OwnedBy(*requester)
	}

	if entry.HiddenAt != nil {
		return placeholderDetail(entry, canEdit, hiddenTitle, hiddenBody), nil
	}
	if entry.PublishedAt == nil && !canEdit {
		return placeholderDetail(entry, canEdit, privateTitle, privateBody), nil
	}
	return detail(entry, canEdit)
}

func (s *entryService) Recent(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*model.EntryResponse, error) {
	entries, err := s.entries.Recent(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = entry.ToResponse()
	}
	return responses, nil
}

func (s *entryService) checkAuthorOwned(ctx context.Context, authorID, userID uuid.UUID) error {
	author, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, authormodel.ErrAuthorNotFound) {
			return model.ErrNotOwner
		}
		return err
	}
	if !author.OwnedBy(userID) {
		return model.ErrNotOwner
	}
	return nil
}

func detail(entry *model.Entry, canEdit bool) (*model.EntryDetailResponse, error) {
	html, err := markdown.Render(entry.Text)
	if err != nil {
		return nil, err
	}
	return &model.EntryDetailResponse{
		ID:          entry.ID,
		AuthorID:    entry.AuthorID,
		Title:       entry.Title,
		HTML:        html,
		PublishedAt: entry.PublishedAt,
		CanEdit:     canEdit,
	}, nil
}

func placeholderDetail(entry *model.Entry, canEdit bool, title, body string) *model.EntryDetailResponse {
	return &model.EntryDetailResponse{
		ID:       entry.ID,
		AuthorID: entry.AuthorID,
		Title:    title,
		HTML:     body,
		CanEdit:  canEdit,
	}
}
