package repository

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/story/model"
)

type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	Update(ctx context.Context, story *model.Story) error

	// GetByID fetches a story regardless of its visibility.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error)

	// GetPublishedByID fetches a story only when it is publicly visible.
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*model.Story, error)

	// Recent lists published stories, newest publish timestamp first.
	Recent(ctx context.Context, filter model.StoryFilter) ([]*model.Story, error)

	// Inspired lists published stories inspired by the given one, written
	// by someone other than its author.
	Inspired(ctx context.Context, storyID uuid.UUID) ([]*model.Story, error)

	// NextChapter returns the most recently published story by the same
	// author that names the given story as its predecessor, or nil when
	// the sequence ends here.
	NextChapter(ctx context.Context, storyID, authorID uuid.UUID) (*model.Story, error)
}
