package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diary-backend/internal/domains/author/model"
)

type fakeAuthorRepo struct {
	authors map[uuid.UUID]*model.Author
	names   map[string]bool
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{
		authors: map[uuid.UUID]*model.Author{},
		names:   map[string]bool{},
	}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	if f.names[a.Name] {
		return nil, model.ErrDuplicateName
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.authors[a.ID] = a
	f.names[a.Name] = true
	return a, nil
}

func (f *fakeAuthorRepo) Update(_ context.Context, a *model.Author) (*model.Author, error) {
	if _, ok := f.authors[a.ID]; !ok {
		return nil, model.ErrAuthorNotFound
	}
	a.UpdatedAt = time.Now()
	f.authors[a.ID] = a
	return a, nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAuthorRepo) ForUser(_ context.Context, userID uuid.UUID) ([]model.Author, error) {
	out := []model.Author{}
	for _, a := range f.authors {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeAuthorRepo) CountForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range f.authors {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func TestCreateRendersBio(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, model.CreateAuthorRequest{
		Name:    "The Chronicler",
		BioText: "Keeper of *long* stories.",
	})
	require.NoError(t, err)
	assert.Equal(t, "The Chronicler", resp.Name)
	assert.Contains(t, resp.BioHTML, "<em>long</em>")
}

func TestCreateDuplicateName(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), model.CreateAuthorRequest{Name: "Night Wanderer"})
	require.NoError(t, err)

	// Names are unique across all identities, not per identity.
	_, err = svc.Create(context.Background(), uuid.New(), model.CreateAuthorRequest{Name: "Night Wanderer"})
	assert.ErrorIs(t, err, model.ErrDuplicateName)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, model.CreateAuthorRequest{Name: "Owned"})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(context.Background(), uuid.New(), created.ID, model.UpdateAuthorRequest{Name: &name})
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestForUserOrderedByName(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)
	userID := uuid.New()

	for _, name := range []string{"Zeta", "Alpha", "Middle"} {
		_, err := svc.Create(context.Background(), userID, model.CreateAuthorRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), uuid.New(), model.CreateAuthorRequest{Name: "Beta"})
	require.NoError(t, err)

	authors, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Alpha", authors[0].Name)
	assert.Equal(t, "Middle", authors[1].Name)
	assert.Equal(t, "Zeta", authors[2].Name)

	count, err := svc.CountForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
