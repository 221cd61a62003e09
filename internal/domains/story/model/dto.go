package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateStoryRequest struct {
	AuthorID     uuid.UUID  `json:"author_id"`
	Title        string     `json:"title"`
	Tagline      string     `json:"tagline"`
	Teaser       *string    `json:"teaser"`
	Text         string     `json:"text"`
	Language     string     `json:"language"`
	LicenseID    *uuid.UUID `json:"license_id"`
	Private      bool       `json:"private"`
	InspiredByID *uuid.UUID `json:"inspired_by_id"`
	PrecededByID *uuid.UUID `json:"preceded_by_id"`
}

func (r CreateStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Tagline, validation.Length(0, MaxTaglineLength)),
		validation.Field(&r.Teaser, validation.Length(0, MaxTeaserLength)),
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.Language, validation.In(SupportedLanguages...)),
	)
}

type UpdateStoryRequest struct {
	Title        *string    `json:"title"`
	Tagline      *string    `json:"tagline"`
	Teaser       *string    `json:"teaser"`
	Text         *string    `json:"text"`
	Language     *string    `json:"language"`
	LicenseID    *uuid.UUID `json:"license_id"`
	Private      *bool      `json:"private"`
	InspiredByID *uuid.UUID `json:"inspired_by_id"`
	PrecededByID *uuid.UUID `json:"preceded_by_id"`
}

func (r UpdateStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Tagline, validation.Length(0, MaxTaglineLength)),
		validation.Field(&r.Teaser, validation.Length(0, MaxTeaserLength)),
		validation.Field(&r.Text, validation.NilOrNotEmpty),
		validation.Field(&r.Language, validation.In(SupportedLanguages...)),
	)
}

// PublishStoryRequest carries the publish-time fields: the teaser shown in
// listings, the license, and the private flag. Everything else is left to
// the regular edit path.
type PublishStoryRequest struct {
	Teaser    *string    `json:"teaser"`
	LicenseID *uuid.UUID `json:"license_id"`
	Private   bool       `json:"private"`
}

func (r PublishStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Teaser, validation.Length(0, MaxTeaserLength)),
	)
}

// StoryResponse is the list/summary shape.
type StoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Title       string     `json:"title"`
	Tagline     string     `json:"tagline"`
	Teaser      *string    `json:"teaser"`
	Language    string     `json:"language"`
	PublishedAt *time.Time `json:"published_at"`
}

func (s *Story) ToResponse() *StoryResponse {
	return &StoryResponse{
		ID:          s.ID,
		AuthorID:    s.AuthorID,
		Title:       s.Title,
		Tagline:     s.Tagline,
		Teaser:      s.Teaser,
		Language:    s.Language,
		PublishedAt: s.PublishedAt,
	}
}

// StoryDetailResponse is the read shape. HTML carries the rendered story
// text, or a placeholder when the requester is not allowed to read it.
type StoryDetailResponse struct {
	ID            uuid.UUID  `json:"id"`
	AuthorID      uuid.UUID  `json:"author_id"`
	Title         string     `json:"title"`
	Tagline       string     `json:"tagline"`
	Teaser        *string    `json:"teaser"`
	Language      string     `json:"language"`
	LicenseID     *uuid.UUID `json:"license_id"`
	HTML          string     `json:"html"`
	InspiredByID  *uuid.UUID `json:"inspired_by_id"`
	PrecededByID  *uuid.UUID `json:"preceded_by_id"`
	NextChapterID *uuid.UUID `json:"next_chapter_id"`
	PublishedAt   *time.Time `json:"published_at"`
	CanEdit       bool       `json:"can_edit"`
}

// FormField describes one field of a story form. Relation fields only
// appear when they have a resolved value; absence means the field is not
// part of this form at all.
type FormField struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Value     interface{} `json:"value,omitempty"`
	Required  bool        `json:"required"`
	MaxLength int         `json:"max_length,omitempty"`
	Choices   []string    `json:"choices,omitempty"`
}

// StoryForm is the descriptor returned by the new/edit form endpoints.
type StoryForm struct {
	Fields []FormField `json:"fields"`
}

// HasField reports whether the form carries a field with the given name.
func (f *StoryForm) HasField(name string) bool {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return true
		}
	}
	return false
}

// Field returns the named field, or nil when the form does not carry it.
func (f *StoryForm) Field(name string) *FormField {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}
