package service

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/moderation/model"
	"diary-backend/internal/domains/moderation/repository"
	"diary-backend/pkg/logger"
)

type ModerationService interface {
	// Flag records a moderation report. userID is nil for anonymous reports.
	Flag(ctx context.Context, userID *uuid.UUID, ref model.ContentRef, reason string) (*model.Flag, error)

	// Vote appends one vote to the log; repeat votes are separate rows.
	Vote(ctx context.Context, userID *uuid.UUID, ref model.ContentRef, direction string) (*model.Vote, error)

	Summary(ctx context.Context, ref model.ContentRef) (*model.VoteSummary, error)
}

type moderationService struct {
	repo repository.ModerationRepository
}

func NewModerationService(repo repository.ModerationRepository) ModerationService {
	return &moderationService{repo: repo}
}

func (s *moderationService) Flag(ctx context.Context, userID *uuid.UUID, ref model.ContentRef, reason string) (*model.Flag, error) {
	if !ref.Valid() {
		return nil, model.ErrInvalidTarget
	}
	flag := &model.Flag{
		UserID:  userID,
		StoryID: ref.StoryID,
		EntryID: ref.EntryID,
		Reason:  reason,
	}
	if err := s.repo.CreateFlag(ctx, flag); err != nil {
		return nil, err
	}
	logger.Info("content flagged", map[string]interface{}{
		"flag_id":   flag.ID.String(),
		"reason":    reason,
		"anonymous": userID == nil,
	})
	return flag, nil
}

func (s *moderationService) Vote(ctx context.Context, userID *uuid.UUID, ref model.ContentRef, direction string) (*model.Vote, error) {
	if !ref.Valid() {
		return nil, model.ErrInvalidTarget
	}
	vote := &model.Vote{
		UserID:    userID,
		StoryID:   ref.StoryID,
		EntryID:   ref.EntryID,
		Direction: direction,
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *moderationService) Summary(ctx context.Context, ref model.ContentRef) (*model.VoteSummary, error) {
	if !ref.Valid() {
		return nil, model.ErrInvalidTarget
	}
	ups, downs, err := s.repo.VoteCounts(ctx, ref)
	if err != nil {
		return nil, err
	}
	return model.NewVoteSummary(ups, downs), nil
}
