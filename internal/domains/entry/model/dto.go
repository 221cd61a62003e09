package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	AuthorID uuid.UUID `json:"author_id"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Private  bool      `json:"private"`
}

func (r CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Text, validation.Required),
	)
}

type UpdateEntryRequest struct {
	Title   *string `json:"title"`
	Text    *string `json:"text"`
	Private *bool   `json:"private"`
}

func (r UpdateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Text, validation.NilOrNotEmpty),
	)
}

type EntryResponse struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"published_at"`
}

func (e *Entry) ToResponse() *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		AuthorID:    e.AuthorID,
		Title:       e.Title,
		PublishedAt: e.PublishedAt,
	}
}

type EntryDetailResponse struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Title       string     `json:"title"`
	HTML        string     `json:"html"`
	PublishedAt *time.Time `json:"published_at"`
	CanEdit     bool       `json:"can_edit"`
}
