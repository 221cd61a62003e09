package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authormodel "diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/story/model"
	"diary-backend/internal/domains/story/repository"
	"diary-backend/pkg/logger"
	"diary-backend/pkg/markdown"
)

// Placeholder content substituted when the requester may not read the text.
const (
	hiddenTitle  = "This story is hidden"
	hiddenBody   = "<p>This story was hidden by a moderator.</p>"
	privateTitle = "This story is private"
	privateBody  = "<p>This story has not been published by its author.</p>"
)

// maxChainDepth bounds the preceded_by walk. Chains longer than this are
// treated as cyclic rather than walked forever.
const maxChainDepth = 100

type storyService struct {
	stories  repository.StoryRepository
	authors  AuthorReader
	licenses LicenseChecker
}

func NewStoryService(stories repository.StoryRepository, authors AuthorReader, licenses LicenseChecker) StoryService {
	return &storyService{stories: stories, authors: authors, licenses: licenses}
}

func (s *storyService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateStoryRequest) (*model.StoryDetailResponse, error) {
	if err := s.checkAuthorOwned(ctx, req.AuthorID, userID); err != nil {
		return nil, err
	}
	if req.InspiredByID != nil {
		if err := s.checkRelationPublished(ctx, *req.InspiredByID); err != nil {
			return nil, err
		}
	}
	if req.PrecededByID != nil {
		if err := s.checkRelationPublished(ctx, *req.PrecededByID); err != nil {
			return nil, err
		}
	}
	if req.LicenseID != nil {
		if err := s.checkLicenseActive(ctx, *req.LicenseID); err != nil {
			return nil, err
		}
	}

	language := req.Language
	if language == "" {
		language = model.DefaultLanguage
	}
	story := &model.Story{
		AuthorID:     req.AuthorID,
		Title:        strings.TrimSpace(req.Title),
		Tagline:      strings.TrimSpace(req.Tagline),
		Teaser:       req.Teaser,
		Text:         req.Text,
		Language:     language,
		LicenseID:    req.LicenseID,
		InspiredByID: req.InspiredByID,
		PrecededByID: req.PrecededByID,
	}
	story.ApplyPrivate(req.Private, time.Now().UTC())

	if err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	logger.Info("story created", map[string]interface{}{
		"story_id":  story.ID.String(),
		"author_id": story.AuthorID.String(),
		"published": story.Published(),
	})
	return s.detail(ctx, story, true)
}

func (s *storyService) Update(ctx context.Context, userID, storyID uuid.UUID, req *model.UpdateStoryRequest) (*model.StoryDetailResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorOwned(ctx, story.AuthorID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		story.Title = strings.TrimSpace(*req.Title)
	}
	if req.Tagline != nil {
		story.Tagline = strings.TrimSpace(*req.Tagline)
	}
	if req.Teaser != nil {
		story.Teaser = req.Teaser
	}
	if req.Text != nil {
		story.Text = *req.Text
	}
	if req.Language != nil {
		story.Language = *req.Language
	}

	// Relation pointers follow the usual partial-update convention: nil
	// leaves the field alone, the nil UUID clears it.
	if req.InspiredByID != nil {
		if *req.InspiredByID == uuid.Nil {
			story.InspiredByID = nil
		} else {
			if *req.InspiredByID == storyID {
				return nil, model.ErrSelfReference
			}
			if err := s.checkRelationPublished(ctx, *req.InspiredByID); err != nil {
				return nil, err
			}
			story.InspiredByID = req.InspiredByID
		}
	}
	if req.PrecededByID != nil {
		if *req.PrecededByID == uuid.Nil {
			story.PrecededByID = nil
		} else {
			if *req.PrecededByID == storyID {
				return nil, model.ErrSelfReference
			}
			if err := s.checkRelationPublished(ctx, *req.PrecededByID); err != nil {
				return nil, err
			}
			if err := s.checkChapterChain(ctx, storyID, *req.PrecededByID); err != nil {
				return nil, err
			}
			story.PrecededByID = req.PrecededByID
		}
	}
	if req.LicenseID != nil {
		if *req.LicenseID == uuid.Nil {
			story.LicenseID = nil
		} else {
			if err := s.checkLicenseActive(ctx, *req.LicenseID); err != nil {
				return nil, err
			}
			story.LicenseID = req.LicenseID
		}
	}
	if req.Private != nil {
		story.ApplyPrivate(*req.Private, time.Now().UTC())
	}

	if err := s.stories.Update(ctx, story); err != nil {
		return nil, err
	}
	return s.detail(ctx, story, true)
}

func (s *storyService) Publish(ctx context.Context, userID, storyID uuid.UUID, req *model.PublishStoryRequest) (*model.StoryDetailResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorOwned(ctx, story.AuthorID, userID); err != nil {
		return nil, err
	}

	if req.Teaser != nil {
		story.Teaser = req.Teaser
	}
	if req.LicenseID != nil {
		if *req.LicenseID == uuid.Nil {
			story.LicenseID = nil
		} else {
			if err := s.checkLicenseActive(ctx, *req.LicenseID); err != nil {
				return nil, err
			}
			story.LicenseID = req.LicenseID
		}
	}
	story.ApplyPrivate(req.Private, time.Now().UTC())

	if err := s.stories.Update(ctx, story); err != nil {
		return nil, err
	}
	logger.Info("story published", map[string]interface{}{
		"story_id":  story.ID.String(),
		"published": story.Published(),
	})
	return s.detail(ctx, story, true)
}

func (s *storyService) Read(ctx context.Context, requester *uuid.UUID, storyID uuid.UUID) (*model.StoryDetailResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}

	canEdit := false
	if requester != nil {
		author, err := s.authors.GetByID(ctx, story.AuthorID)
		if err != nil {
			return nil, err
		}
		canEdit = author.OwnedBy(*requester)
	}

	// Hidden beats everything, including ownership. Unpublished text is
	// readable only by its owner.
	if story.HiddenAt != nil {
		return placeholderDetail(story, canEdit, hiddenTitle, hiddenBody), nil
	}
	if story.PublishedAt == nil && !canEdit {
		return placeholderDetail(story, canEdit, privateTitle, privateBody), nil
	}
	return s.detail(ctx, story, canEdit)
}

func (s *storyService) Recent(ctx context.Context, filter model.StoryFilter) ([]*model.StoryResponse, error) {
	stories, err := s.stories.Recent(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(stories), nil
}

func (s *storyService) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.StoryResponse, error) {
	return s.Recent(ctx, model.StoryFilter{AuthorID: &authorID})
}

func (s *storyService) Inspired(ctx context.Context, storyID uuid.UUID) ([]*model.StoryResponse, error) {
	// The source must itself be publicly visible before its offshoots are.
	if _, err := s.stories.GetPublishedByID(ctx, storyID); err != nil {
		return nil, err
	}
	stories, err := s.stories.Inspired(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return toResponses(stories), nil
}

func (s *storyService) NewForm(ctx context.Context, userID uuid.UUID, params FormParams) (*model.StoryForm, error) {
	form := baseForm("", "", nil, "", model.DefaultLanguage, nil, false)
	if err := s.addAuthorField(ctx, form, userID, nil); err != nil {
		return nil, err
	}
	s.addRelationField(ctx, form, "inspired_by_id", nil, params.InspiredByID)
	s.addRelationField(ctx, form, "preceded_by_id", nil, params.PrecededByID)
	return form, nil
}

func (s *storyService) EditForm(ctx context.Context, userID, storyID uuid.UUID, params FormParams) (*model.StoryForm, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorOwned(ctx, story.AuthorID, userID); err != nil {
		return nil, err
	}

	form := baseForm(story.Title, story.Tagline, story.Teaser, story.Text,
		story.Language, story.LicenseID, story.PublishedAt == nil)
	if err := s.addAuthorField(ctx, form, userID, &story.AuthorID); err != nil {
		return nil, err
	}
	s.addRelationField(ctx, form, "inspired_by_id", story.InspiredByID, params.InspiredByID)
	s.addRelationField(ctx, form, "preceded_by_id", story.PrecededByID, params.PrecededByID)
	return form, nil
}

// addAuthorField prepends the author select, its choices restricted to the
// pseudonyms the acting identity owns.
func (s *storyService) addAuthorField(ctx context.Context, form *model.StoryForm, userID uuid.UUID, value *uuid.UUID) error {
	authors, err := s.authors.ForUser(ctx, userID)
	if err != nil {
		return err
	}
	choices := make([]string, len(authors))
	for i, a := range authors {
		choices[i] = a.ID.String()
	}
	field := model.FormField{
		Name:     "author_id",
		Type:     "select",
		Required: true,
		Choices:  choices,
	}
	if value != nil {
		field.Value = value.String()
	}
	form.Fields = append([]model.FormField{field}, form.Fields...)
	return nil
}

// addRelationField adds a relation field to the form only when it has a
// resolved value: the instance value wins, otherwise a request param that
// names a published story. Anything else leaves the field off the form.
func (s *storyService) addRelationField(ctx context.Context, form *model.StoryForm, name string, instance, param *uuid.UUID) {
	value := instance
	if value == nil && param != nil {
		if _, err := s.stories.GetPublishedByID(ctx, *param); err == nil {
			value = param
		}
	}
	if value == nil {
		return
	}
	form.Fields = append(form.Fields, model.FormField{
		Name:  name,
		Type:  "hidden",
		Value: value.String(),
	})
}

func baseForm(title, tagline string, teaser *string, text, language string, licenseID *uuid.UUID, private bool) *model.StoryForm {
	var teaserValue interface{}
	if teaser != nil {
		teaserValue = *teaser
	}
	var licenseValue interface{}
	if licenseID != nil {
		licenseValue = licenseID.String()
	}
	languages := make([]string, len(model.SupportedLanguages))
	for i, l := range model.SupportedLanguages {
		languages[i] = l.(string)
	}
	return &model.StoryForm{
		Fields: []model.FormField{
			{Name: "title", Type: "text", Value: title, Required: true, MaxLength: model.MaxTitleLength},
			{Name: "tagline", Type: "text", Value: tagline, MaxLength: model.MaxTaglineLength},
			{Name: "teaser", Type: "text", Value: teaserValue, MaxLength: model.MaxTeaserLength},
			{Name: "text", Type: "textarea", Value: text, Required: true},
			{Name: "language", Type: "select", Value: language, Choices: languages},
			{Name: "license_id", Type: "select", Value: licenseValue},
			{Name: "private", Type: "checkbox", Value: private},
		},
	}
}

func (s *storyService) checkAuthorOwned(ctx context.Context, authorID, userID uuid.UUID) error {
	author, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		// A missing pseudonym is an ownership failure; anything else
		// (infrastructure) must surface as what it is.
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

func (s *storyService) checkRelationPublished(ctx context.Context, id uuid.UUID) error {
	if _, err := s.stories.GetPublishedByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrStoryNotFound) {
			return model.ErrRelationNotFound
		}
		return err
	}
	return nil
}

// checkChapterChain walks the preceded_by ancestry starting at the proposed
// predecessor and rejects the link when it would loop back to the story.
func (s *storyService) checkChapterChain(ctx context.Context, storyID, targetID uuid.UUID) error {
	current := targetID
	for depth := 0; depth < maxChainDepth; depth++ {
		if current == storyID {
			return model.ErrPrecededCycle
		}
		ancestor, err := s.stories.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, model.ErrStoryNotFound) {
				return nil
			}
			return err
		}
		if ancestor.PrecededByID == nil {
			return nil
		}
		current = *ancestor.PrecededByID
	}
	return model.ErrPrecededCycle
}

func (s *storyService) checkLicenseActive(ctx context.Context, id uuid.UUID) error {
	active, err := s.licenses.IsActive(ctx, id)
	if err != nil {
		return err
	}
	if !active {
		return model.ErrLicenseInactive
	}
	return nil
}

func (s *storyService) detail(ctx context.Context, story *model.Story, canEdit bool) (*model.StoryDetailResponse, error) {
	html, err := markdown.Render(story.Text)
	if err != nil {
		return nil, err
	}
	next, err := s.stories.NextChapter(ctx, story.ID, story.AuthorID)
	if err != nil {
		return nil, err
	}
	var nextID *uuid.UUID
	if next != nil {
		nextID = &next.ID
	}
	return &model.StoryDetailResponse{
		ID:            story.ID,
		AuthorID:      story.AuthorID,
		Title:         story.Title,
		Tagline:       story.Tagline,
		Teaser:        story.Teaser,
		Language:      story.Language,
		LicenseID:     story.LicenseID,
		HTML:          html,
		InspiredByID:  story.InspiredByID,
		PrecededByID:  story.PrecededByID,
		NextChapterID: nextID,
		PublishedAt:   story.PublishedAt,
		CanEdit:       canEdit,
	}, nil
}

func placeholderDetail(story *model.Story, canEdit bool, title, body string) *model.StoryDetailResponse {
	return &model.StoryDetailResponse{
		ID:       story.ID,
		AuthorID: story.AuthorID,
		Title:    title,
		Language: story.Language,
		HTML:     body,
		CanEdit:  canEdit,
	}
}

func toResponses(stories []*model.Story) []*model.StoryResponse {
	responses := make([]*model.StoryResponse, len(stories))
	for i, story := range stories {
		responses[i] = story.ToResponse()
	}
	return responses
}
