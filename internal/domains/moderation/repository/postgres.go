package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"diary-backend/internal/domains/moderation/model"
)

type postgresModerationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresModerationRepository(db *pgxpool.Pool) ModerationRepository {
	return &postgresModerationRepository{db: db}
}

func (r *postgresModerationRepository) CreateFlag(ctx context.Context, flag *model.Flag) error {
	query := `
		INSERT INTO flags (user_id, story_id, entry_id, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		flag.UserID, flag.StoryID, flag.EntryID, flag.Reason,
	).Scan(&flag.ID, &flag.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrContentNotFound
		}
		return fmt.Errorf("failed to create flag: %w", err)
	}
	return nil
}

func (r *postgresModerationRepository) CreateVote(ctx context.Context, vote *model.Vote) error {
	query := `
		INSERT INTO votes (user_id, story_id, entry_id, direction)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		vote.UserID, vote.StoryID, vote.EntryID, vote.Direction,
	).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrContentNotFound
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

func (r *postgresModerationRepository) VoteCounts(ctx context.Context, ref model.ContentRef) (int64, int64, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE direction = 'up'),
			COUNT(*) FILTER (WHERE direction = 'down')
		FROM votes
		WHERE story_id IS NOT DISTINCT FROM $1::uuid
			AND entry_id IS NOT DISTINCT FROM $2::uuid`

	var ups, downs int64
	if err := r.db.QueryRow(ctx, query, ref.StoryID, ref.EntryID).Scan(&ups, &downs); err != nil {
		return 0, 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return ups, downs, nil
}
