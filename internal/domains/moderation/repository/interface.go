package repository

import (
	"context"

	"diary-backend/internal/domains/moderation/model"
)

type ModerationRepository interface {
	CreateFlag(ctx context.Context, flag *model.Flag) error
	CreateVote(ctx context.Context, vote *model.Vote) error

	// VoteCounts tallies the vote log for one content item.
	VoteCounts(ctx context.Context, ref model.ContentRef) (ups, downs int64, err error)
}
