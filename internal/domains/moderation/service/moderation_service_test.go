package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diary-backend/internal/domains/moderation/model"
)

type fakeModerationRepo struct {
	flags []*model.Flag
	votes []*model.Vote
}

func (f *fakeModerationRepo) CreateFlag(_ context.Context, flag *model.Flag) error {
	flag.ID = uuid.New()
	f.flags = append(f.flags, flag)
	return nil
}

func (f *fakeModerationRepo) CreateVote(_ context.Context, vote *model.Vote) error {
	vote.ID = uuid.New()
	f.votes = append(f.votes, vote)
	return nil
}

func (f *fakeModerationRepo) VoteCounts(_ context.Context, ref model.ContentRef) (int64, int64, error) {
	var ups, downs int64
	for _, v := range f.votes {
		if ref.StoryID != nil && (v.StoryID == nil || *v.StoryID != *ref.StoryID) {
			continue
		}
		if ref.EntryID != nil && (v.EntryID == nil || *v.EntryID != *ref.EntryID) {
			continue
		}
		if v.Direction == model.DirectionUp {
			ups++
		} else {
			downs++
		}
	}
	return ups, downs, nil
}

func TestFlagAllowsAnonymous(t *testing.T) {
	repo := &fakeModerationRepo{}
	svc := NewModerationService(repo)
	storyID := uuid.New()

	flag, err := svc.Flag(context.Background(), nil, model.ContentRef{StoryID: &storyID}, model.ReasonSpam)
	require.NoError(t, err)
	assert.Nil(t, flag.UserID)
	assert.Equal(t, model.ReasonSpam, flag.Reason)
}

func TestFlagRequiresExactlyOneTarget(t *testing.T) {
	svc := NewModerationService(&fakeModerationRepo{})
	storyID := uuid.New()
	entryID := uuid.New()

	_, err := svc.Flag(context.Background(), nil, model.ContentRef{}, model.ReasonSpam)
	assert.ErrorIs(t, err, model.ErrInvalidTarget)

	_, err = svc.Flag(context.Background(), nil, model.ContentRef{StoryID: &storyID, EntryID: &entryID}, model.ReasonSpam)
	assert.ErrorIs(t, err, model.ErrInvalidTarget)
}

func TestVotesAreAppendOnly(t *testing.T) {
	repo := &fakeModerationRepo{}
	svc := NewModerationService(repo)
	userID := uuid.New()
	storyID := uuid.New()

	// The same user voting twice produces two rows; no dedup applies.
	for i := 0; i < 2; i++ {
		_, err := svc.Vote(context.Background(), &userID, model.ContentRef{StoryID: &storyID}, model.DirectionUp)
		require.NoError(t, err)
	}
	assert.Len(t, repo.votes, 2)
}

func TestSummary(t *testing.T) {
	repo := &fakeModerationRepo{}
	svc := NewModerationService(repo)
	storyID := uuid.New()
	ref := model.ContentRef{StoryID: &storyID}

	for i := 0; i < 3; i++ {
		_, err := svc.Vote(context.Background(), nil, ref, model.DirectionUp)
		require.NoError(t, err)
	}
	_, err := svc.Vote(context.Background(), nil, ref, model.DirectionDown)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Ups)
	assert.Equal(t, int64(1), summary.Downs)
	assert.Equal(t, "2", summary.Score.String())
	assert.Equal(t, "0.75", summary.Ratio.String())
}

func TestSummaryWithNoVotes(t *testing.T) {
	svc := NewModerationService(&fakeModerationRepo{})
	entryID := uuid.New()

	summary, err := svc.Summary(context.Background(), model.ContentRef{EntryID: &entryID})
	require.NoError(t, err)
	assert.True(t, summary.Score.IsZero())
	assert.True(t, summary.Ratio.IsZero())
}
