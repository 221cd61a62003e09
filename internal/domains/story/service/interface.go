package service

import (
	"context"

	"github.com/google/uuid"

	authormodel "diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/story/model"
)

// AuthorReader is the slice of the author repository the story service
// needs to resolve ownership and offer author choices on forms.
type AuthorReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
	ForUser(ctx context.Context, userID uuid.UUID) ([]authormodel.Author, error)
}

// LicenseChecker reports whether a license may still be attached to new
// or edited stories.
type LicenseChecker interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// FormParams carry the optional relation hints a form request may name.
type FormParams struct {
	InspiredByID *uuid.UUID
	PrecededByID *uuid.UUID
}

type StoryService interface {
	Create(ctx context.Context, userID uuid.UUID, req *model.CreateStoryRequest) (*model.StoryDetailResponse, error)
	Update(ctx context.Context, userID, storyID uuid.UUID, req *model.UpdateStoryRequest) (*model.StoryDetailResponse, error)

	// Publish sets the teaser, license and private flag on an existing
	// story, owner only.
	Publish(ctx context.Context, userID, storyID uuid.UUID, req *model.PublishStoryRequest) (*model.StoryDetailResponse, error)

	// Read returns the detail view. The row is always fetched; when the
	// requester may not see the text, placeholder content is substituted.
	Read(ctx context.Context, requester *uuid.UUID, storyID uuid.UUID) (*model.StoryDetailResponse, error)

	Recent(ctx context.Context, filter model.StoryFilter) ([]*model.StoryResponse, error)
	ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.StoryResponse, error)
	Inspired(ctx context.Context, storyID uuid.UUID) ([]*model.StoryResponse, error)

	NewForm(ctx context.Context, userID uuid.UUID, params FormParams) (*model.StoryForm, error)
	EditForm(ctx context.Context, userID, storyID uuid.UUID, params FormParams) (*model.StoryForm, error)
}
