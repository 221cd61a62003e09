package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/entry/model"
)

type fakeEntryRepo struct {
	entries map[uuid.UUID]*model.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: map[uuid.UUID]*model.Entry{}}
}

func (f *fakeEntryRepo) Create(_ context.Context, e *model.Entry) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeEntryRepo) Update(_ context.Context, e *model.Entry) error {
	if _, ok := f.entries[e.ID]; !ok {
		return model.ErrEntryNotFound
	}
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntryRepo) Recent(_ context.Context, authorID *uuid.UUID, limit, offset int) ([]*model.Entry, error) {
	out := []*model.Entry{}
	for _, e := range f.entries {
		if e.HiddenAt != nil {
			continue
		}
		if authorID != nil && e.AuthorID != *authorID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

type fakeAuthorReader struct {
	owners map[uuid.UUID]uuid.UUID
	err    error
}

func (f *fakeAuthorReader) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	userID, ok := f.owners[id]
	if !ok {
		return nil, authormodel.ErrAuthorNotFound
	}
	return &authormodel.Author{ID: id, UserID: userID}, nil
}

func TestEntryCreateAndRead(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	authorID := uuid.New()
	svc := NewEntryService(repo, &fakeAuthorReader{owners: map[uuid.UUID]uuid.UUID{authorID: userID}})

	detail, err := svc.Create(context.Background(), userID, &model.CreateEntryRequest{
		AuthorID: authorID,
		Title:    "First night out",
		Text:     "Slept under the stars. **Cold.**",
	})
	require.NoError(t, err)
	require.NotNil(t, detail.PublishedAt)
	assert.Contains(t, detail.HTML, "<strong>Cold.</strong>")

	read, err := svc.Read(context.Background(), nil, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "First night out", read.Title)
	assert.False(t, read.CanEdit)
}

func TestEntryHiddenPlaceholder(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	authorID := uuid.New()
	svc := NewEntryService(repo, &fakeAuthorReader{owners: map[uuid.UUID]uuid.UUID{authorID: userID}})

	now := time.Now()
	entry := &model.Entry{AuthorID: authorID, Title: "Raw", Text: "secret", PublishedAt: &now}
	require.NoError(t, repo.Create(context.Background(), entry))
	stored := repo.entries[entry.ID]
	stored.HiddenAt = &now

	detail, err := svc.Read(context.Background(), &userID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "This entry is hidden", detail.Title)
	assert.NotContains(t, detail.HTML, "secret")
}

func TestEntryPrivateVisibleOnlyToOwner(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	authorID := uuid.New()
	svc := NewEntryService(repo, &fakeAuthorReader{owners: map[uuid.UUID]uuid.UUID{authorID: userID}})

	detail, err := svc.Create(context.Background(), userID, &model.CreateEntryRequest{
		AuthorID: authorID,
		Title:    "Dear diary",
		Text:     "for my eyes only",
		Private:  true,
	})
	require.NoError(t, err)
	assert.Nil(t, detail.PublishedAt)

	stranger := uuid.New()
	read, err := svc.Read(context.Background(), &stranger, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "This entry is private", read.Title)

	read, err = svc.Read(context.Background(), &userID, detail.ID)
	require.NoError(t, err)
	assert.Contains(t, read.HTML, "for my eyes only")
	assert.True(t, read.CanEdit)
}

func TestEntryUpdateRejectsNonOwner(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	authorID := uuid.New()
	svc := NewEntryService(repo, &fakeAuthorReader{owners: map[uuid.UUID]uuid.UUID{authorID: userID}})

	detail, err := svc.Create(context.Background(), userID, &model.CreateEntryRequest{
		AuthorID: authorID,
		Title:    "Mine",
		Text:     "text",
	})
	require.NoError(t, err)

	title := "Not yours"
	_, err = svc.Update(context.Background(), uuid.New(), detail.ID, &model.UpdateEntryRequest{Title: &title})
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestEntryCreatePropagatesAuthorLookupFailure(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo, &fakeAuthorReader{err: errors.New("connection refused")})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateEntryRequest{
		AuthorID: uuid.New(),
		Title:    "Unreachable",
		Text:     "text",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotOwner)
	assert.EqualError(t, err, "connection refused")
}
