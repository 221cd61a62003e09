package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/story/model"
)

type fakeStoryRepo struct {
	stories map[uuid.UUID]*model.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: map[uuid.UUID]*model.Story{}}
}

func (f *fakeStoryRepo) Create(_ context.Context, s *model.Story) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.stories[s.ID] = &cp
	return nil
}

func (f *fakeStoryRepo) Update(_ context.Context, s *model.Story) error {
	if _, ok := f.stories[s.ID]; !ok {
		return model.ErrStoryNotFound
	}
	s.UpdatedAt = time.Now()
	cp := *s
	f.stories[s.ID] = &cp
	return nil
}

func (f *fakeStoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Story, error) {
	s, ok := f.stories[id]
	if !ok {
		return nil, model.ErrStoryNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStoryRepo) GetPublishedByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	s, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Published() {
		return nil, model.ErrStoryNotFound
	}
	return s, nil
}

func (f *fakeStoryRepo) published() []*model.Story {
	out := []*model.Story{}
	for _, s := range f.stories {
		if s.Published() {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(*out[j].PublishedAt) {
			return out[i].PublishedAt.After(*out[j].PublishedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (f *fakeStoryRepo) Recent(_ context.Context, filter model.StoryFilter) ([]*model.Story, error) {
	out := []*model.Story{}
	for _, s := range f.published() {
		if filter.AuthorID != nil && s.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.InspiredByID != nil && (s.InspiredByID == nil || *s.InspiredByID != *filter.InspiredByID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStoryRepo) Inspired(_ context.Context, storyID uuid.UUID) ([]*model.Story, error) {
	source, ok := f.stories[storyID]
	if !ok {
		return nil, model.ErrStoryNotFound
	}
	out := []*model.Story{}
	for _, s := range f.published() {
		if s.InspiredByID != nil && *s.InspiredByID == storyID && s.AuthorID != source.AuthorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) NextChapter(_ context.Context, storyID, authorID uuid.UUID) (*model.Story, error) {
	for _, s := range f.published() {
		if s.PrecededByID != nil && *s.PrecededByID == storyID && s.AuthorID == authorID {
			return s, nil
		}
	}
	return nil, nil
}

type fakeAuthors struct {
	owners map[uuid.UUID]uuid.UUID // author id -> user id
	err    error                   // injected lookup failure
}

func (f *fakeAuthors) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	userID, ok := f.owners[id]
	if !ok {
		return nil, authormodel.ErrAuthorNotFound
	}
	return &authormodel.Author{ID: id, UserID: userID, Name: "pen"}, nil
}

func (f *fakeAuthors) ForUser(_ context.Context, userID uuid.UUID) ([]authormodel.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []authormodel.Author{}
	for id, owner := range f.owners {
		if owner == userID {
			out = append(out, authormodel.Author{ID: id, UserID: owner, Name: "pen"})
		}
	}
	return out, nil
}

type fakeLicenses struct {
	active map[uuid.UUID]bool
}

func (f *fakeLicenses) IsActive(_ context.Context, id uuid.UUID) (bool, error) {
	return f.active[id], nil
}

type fixture struct {
	svc      StoryService
	repo     *fakeStoryRepo
	authors  *fakeAuthors
	licenses *fakeLicenses
	userID   uuid.UUID
	authorID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newFakeStoryRepo(),
		authors:  &fakeAuthors{owners: map[uuid.UUID]uuid.UUID{}},
		licenses: &fakeLicenses{active: map[uuid.UUID]bool{}},
		userID:   uuid.New(),
		authorID: uuid.New(),
	}
	f.authors.owners[f.authorID] = f.userID
	f.svc = NewStoryService(f.repo, f.authors, f.licenses)
	return f
}

func (f *fixture) addStory(t *testing.T, authorID uuid.UUID, publishedAt *time.Time, mutate func(*model.Story)) *model.Story {
	t.Helper()
	s := &model.Story{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       "title",
		Text:        "body",
		Language:    "en",
		PublishedAt: publishedAt,
	}
	if mutate != nil {
		mutate(s)
	}
	cp := *s
	f.repo.stories[s.ID] = &cp
	return s
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestCreateStampsPublishTimestamp(t *testing.T) {
	f := newFixture(t)

	detail, err := f.svc.Create(context.Background(), f.userID, &model.CreateStoryRequest{
		AuthorID: f.authorID,
		Title:    "First light",
		Text:     "**Published 0**",
	})
	require.NoError(t, err)
	require.NotNil(t, detail.PublishedAt)
	assert.True(t, detail.CanEdit)
	assert.Equal(t, "<p><strong>Published 0</strong></p>", detail.HTML)
}

func TestCreatePrivateLeavesDraft(t *testing.T) {
	f := newFixture(t)

	detail, err := f.svc.Create(context.Background(), f.userID, &model.CreateStoryRequest{
		AuthorID: f.authorID,
		Title:    "Drawer novel",
		Text:     "not yet",
		Private:  true,
	})
	require.NoError(t, err)
	assert.Nil(t, detail.PublishedAt)
}

func TestCreateRejectsForeignAuthor(t *testing.T) {
	f := newFixture(t)
	stranger := uuid.New()

	_, err := f.svc.Create(context.Background(), stranger, &model.CreateStoryRequest{
		AuthorID: f.authorID,
		Title:    "Impostor",
		Text:     "nope",
	})
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestCreateRejectsUnpublishedRelation(t *testing.T) {
	f := newFixture(t)
	draft := f.addStory(t, f.authorID, nil, nil)

	_, err := f.svc.Create(context.Background(), f.userID, &model.CreateStoryRequest{
		AuthorID:     f.authorID,
		Title:        "Follow-up",
		Text:         "text",
		InspiredByID: &draft.ID,
	})
	assert.ErrorIs(t, err, model.ErrRelationNotFound)
}

func TestUpdatePrivateIsIdempotentOnPublishTimestamp(t *testing.T) {
	f := newFixture(t)
	publishedAt := time.Now().Add(-48 * time.Hour).UTC()
	story := f.addStory(t, f.authorID, &publishedAt, nil)

	private := false
	detail, err := f.svc.Update(context.Background(), f.userID, story.ID, &model.UpdateStoryRequest{
		Private: &private,
	})
	require.NoError(t, err)
	require.NotNil(t, detail.PublishedAt)
	assert.True(t, detail.PublishedAt.Equal(publishedAt))
}

func TestUpdatePrivateClearsPublishTimestamp(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)

	private := true
	detail, err := f.svc.Update(context.Background(), f.userID, story.ID, &model.UpdateStoryRequest{
		Private: &private,
	})
	require.NoError(t, err)
	assert.Nil(t, detail.PublishedAt)
}

func TestUpdateRejectsSelfReference(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)

	_, err := f.svc.Update(context.Background(), f.userID, story.ID, &model.UpdateStoryRequest{
		InspiredByID: &story.ID,
	})
	assert.ErrorIs(t, err, model.ErrSelfReference)

	_, err = f.svc.Update(context.Background(), f.userID, story.ID, &model.UpdateStoryRequest{
		PrecededByID: &story.ID,
	})
	assert.ErrorIs(t, err, model.ErrSelfReference)
}

func TestUpdateRejectsChapterCycle(t *testing.T) {
	f := newFixture(t)
	first := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)
	second := f.addStory(t, f.authorID, ptrTime(time.Now()), func(s *model.Story) {
		s.PrecededByID = &first.ID
	})

	// first -> second -> first would loop.
	_, err := f.svc.Update(context.Background(), f.userID, first.ID, &model.UpdateStoryRequest{
		PrecededByID: &second.ID,
	})
	assert.ErrorIs(t, err, model.ErrPrecededCycle)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)
	title := "stolen"

	_, err := f.svc.Update(context.Background(), uuid.New(), story.ID, &model.UpdateStoryRequest{
		Title: &title,
	})
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestReadHiddenSubstitutesPlaceholder(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, ptrTime(time.Now()), func(s *model.Story) {
		s.HiddenAt = ptrTime(time.Now())
		s.Text = "secret"
	})

	// Hidden content is substituted even for the owner.
	detail, err := f.svc.Read(context.Background(), &f.userID, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "This story is hidden", detail.Title)
	assert.NotContains(t, detail.HTML, "secret")
	assert.True(t, detail.CanEdit)
}

func TestReadPrivateVisibleOnlyToOwner(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, nil, func(s *model.Story) {
		s.Text = "draft words"
	})

	stranger := uuid.New()
	detail, err := f.svc.Read(context.Background(), &stranger, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "This story is private", detail.Title)
	assert.NotContains(t, detail.HTML, "draft words")
	assert.False(t, detail.CanEdit)

	detail, err = f.svc.Read(context.Background(), &f.userID, story.ID)
	require.NoError(t, err)
	assert.Equal(t, story.Title, detail.Title)
	assert.Contains(t, detail.HTML, "draft words")
	assert.True(t, detail.CanEdit)
}

func TestReadAnonymousSeesPlaceholderForDraft(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, nil, nil)

	detail, err := f.svc.Read(context.Background(), nil, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "This story is private", detail.Title)
	assert.False(t, detail.CanEdit)
}

func TestReadComputesNextChapter(t *testing.T) {
	f := newFixture(t)
	first := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-2*time.Hour)), nil)
	second := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-time.Hour)), func(s *model.Story) {
		s.PrecededByID = &first.ID
	})

	detail, err := f.svc.Read(context.Background(), nil, first.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.NextChapterID)
	assert.Equal(t, second.ID, *detail.NextChapterID)

	// The sequence ends at the second chapter.
	detail, err = f.svc.Read(context.Background(), nil, second.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.NextChapterID)
}

func TestNextChapterIgnoresOtherAuthors(t *testing.T) {
	f := newFixture(t)
	otherAuthor := uuid.New()
	f.authors.owners[otherAuthor] = uuid.New()

	first := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-2*time.Hour)), nil)
	f.addStory(t, otherAuthor, ptrTime(time.Now()), func(s *model.Story) {
		s.PrecededByID = &first.ID
	})

	detail, err := f.svc.Read(context.Background(), nil, first.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.NextChapterID)
}

func TestInspiredExcludesSameAuthor(t *testing.T) {
	f := newFixture(t)
	otherAuthor := uuid.New()
	f.authors.owners[otherAuthor] = uuid.New()

	source := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-3*time.Hour)), nil)
	f.addStory(t, f.authorID, ptrTime(time.Now().Add(-2*time.Hour)), func(s *model.Story) {
		s.InspiredByID = &source.ID
	})
	offshoot := f.addStory(t, otherAuthor, ptrTime(time.Now().Add(-time.Hour)), func(s *model.Story) {
		s.InspiredByID = &source.ID
	})

	inspired, err := f.svc.Inspired(context.Background(), source.ID)
	require.NoError(t, err)
	require.Len(t, inspired, 1)
	assert.Equal(t, offshoot.ID, inspired[0].ID)
}

func TestRecentOrdersByPublishTimestamp(t *testing.T) {
	f := newFixture(t)
	oldest := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-3*time.Hour)), nil)
	newest := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-time.Hour)), nil)
	middle := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-2*time.Hour)), nil)
	f.addStory(t, f.authorID, nil, nil) // draft, never listed

	recent, err := f.svc.Recent(context.Background(), model.StoryFilter{})
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, newest.ID, recent[0].ID)
	assert.Equal(t, middle.ID, recent[1].ID)
	assert.Equal(t, oldest.ID, recent[2].ID)
}

func TestNewFormAdoptsOnlyPublishedRelations(t *testing.T) {
	f := newFixture(t)
	published := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)
	draft := f.addStory(t, f.authorID, nil, nil)

	form, err := f.svc.NewForm(context.Background(), f.userID, FormParams{
		InspiredByID: &published.ID,
		PrecededByID: &draft.ID,
	})
	require.NoError(t, err)

	field := form.Field("inspired_by_id")
	require.NotNil(t, field)
	assert.Equal(t, published.ID.String(), field.Value)

	// An unpublished candidate leaves the field off the form entirely.
	assert.False(t, form.HasField("preceded_by_id"))
}

func TestNewFormWithoutParamsHasNoRelationFields(t *testing.T) {
	f := newFixture(t)

	form, err := f.svc.NewForm(context.Background(), f.userID, FormParams{})
	require.NoError(t, err)
	assert.False(t, form.HasField("inspired_by_id"))
	assert.False(t, form.HasField("preceded_by_id"))
	assert.True(t, form.HasField("title"))
	assert.True(t, form.HasField("private"))
}

func TestNewFormOffersOwnedAuthorChoices(t *testing.T) {
	f := newFixture(t)
	secondPen := uuid.New()
	f.authors.owners[secondPen] = f.userID
	foreignPen := uuid.New()
	f.authors.owners[foreignPen] = uuid.New()

	form, err := f.svc.NewForm(context.Background(), f.userID, FormParams{})
	require.NoError(t, err)

	field := form.Field("author_id")
	require.NotNil(t, field)
	assert.True(t, field.Required)
	assert.ElementsMatch(t,
		[]string{f.authorID.String(), secondPen.String()}, field.Choices)
	assert.NotContains(t, field.Choices, foreignPen.String())
	assert.Nil(t, field.Value)
}

func TestEditFormAuthorFieldCarriesStoryAuthor(t *testing.T) {
	f := newFixture(t)
	story := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)

	form, err := f.svc.EditForm(context.Background(), f.userID, story.ID, FormParams{})
	require.NoError(t, err)

	field := form.Field("author_id")
	require.NotNil(t, field)
	assert.Equal(t, f.authorID.String(), field.Value)
	assert.Equal(t, []string{f.authorID.String()}, field.Choices)
}

func TestCreatePropagatesAuthorLookupFailure(t *testing.T) {
	f := newFixture(t)
	f.authors.err = errors.New("connection refused")

	_, err := f.svc.Create(context.Background(), f.userID, &model.CreateStoryRequest{
		AuthorID: f.authorID,
		Title:    "Unreachable",
		Text:     "text",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotOwner)
	assert.EqualError(t, err, "connection refused")
}

func TestEditFormInstanceRelationWins(t *testing.T) {
	f := newFixture(t)
	existing := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-2*time.Hour)), nil)
	other := f.addStory(t, f.authorID, ptrTime(time.Now().Add(-time.Hour)), nil)
	story := f.addStory(t, f.authorID, ptrTime(time.Now()), func(s *model.Story) {
		s.InspiredByID = &existing.ID
	})

	form, err := f.svc.EditForm(context.Background(), f.userID, story.ID, FormParams{
		InspiredByID: &other.ID,
	})
	require.NoError(t, err)

	field := form.Field("inspired_by_id")
	require.NotNil(t, field)
	assert.Equal(t, existing.ID.String(), field.Value)
}

func TestEditFormPrivateReflectsDraftState(t *testing.T) {
	f := newFixture(t)
	draft := f.addStory(t, f.authorID, nil, nil)
	published := f.addStory(t, f.authorID, ptrTime(time.Now()), nil)

	form, err := f.svc.EditForm(context.Background(), f.userID, draft.ID, FormParams{})
	require.NoError(t, err)
	assert.Equal(t, true, form.Field("private").Value)

	form, err = f.svc.EditForm(context.Background(), f.userID, published.ID, FormParams{})
	require.NoError(t, err)
	assert.Equal(t, false, form.Field("private").Value)
}

func TestCreateRejectsInactiveLicense(t *testing.T) {
	f := newFixture(t)
	retired := uuid.New()
	f.licenses.active[retired] = false

	_, err := f.svc.Create(context.Background(), f.userID, &model.CreateStoryRequest{
		AuthorID:  f.authorID,
		Title:     "Licensed",
		Text:      "text",
		LicenseID: &retired,
	})
	assert.ErrorIs(t, err, model.ErrLicenseInactive)
}

func TestPublishSetsTeaserLicenseAndTimestamp(t *testing.T) {
	f := newFixture(t)
	draft := f.addStory(t, f.authorID, nil, nil)
	license := uuid.New()
	f.licenses.active[license] = true
	teaser := "A short hook."

	detail, err := f.svc.Publish(context.Background(), f.userID, draft.ID, &model.PublishStoryRequest{
		Teaser:    &teaser,
		LicenseID: &license,
	})
	require.NoError(t, err)
	require.NotNil(t, detail.PublishedAt)
	require.NotNil(t, detail.Teaser)
	assert.Equal(t, teaser, *detail.Teaser)
	assert.Equal(t, license, *detail.LicenseID)
}

func TestPublishRejectsInactiveLicense(t *testing.T) {
	f := newFixture(t)
	draft := f.addStory(t, f.authorID, nil, nil)
	retired := uuid.New()

	_, err := f.svc.Publish(context.Background(), f.userID, draft.ID, &model.PublishStoryRequest{
		LicenseID: &retired,
	})
	assert.ErrorIs(t, err, model.ErrLicenseInactive)
}

func TestPublishRejectsNonOwner(t *testing.T) {
	f := newFixture(t)
	draft := f.addStory(t, f.authorID, nil, nil)

	_, err := f.svc.Publish(context.Background(), uuid.New(), draft.ID, &model.PublishStoryRequest{})
	assert.ErrorIs(t, err, model.ErrNotOwner)
}
