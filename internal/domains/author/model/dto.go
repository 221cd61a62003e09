package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	Name    string  `json:"name"`
	BioText string  `json:"bio_text"`
	Avatar  *string `json:"avatar,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Avatar,
			validation.When(r.Avatar != nil, is.URL.Error("avatar must be a URL")),
		),
	)
}

// UpdateAuthorRequest - PUT /authors/:id
// All fields optional for partial updates.
type UpdateAuthorRequest struct {
	Name    *string `json:"name,omitempty"`
	BioText *string `json:"bio_text,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(1, MaxNameLength)),
		),
		validation.Field(&r.Avatar,
			validation.When(r.Avatar != nil, is.URL.Error("avatar must be a URL")),
		),
	)
}

// AuthorResponse - public representation of a pseudonym
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BioText   string    `json:"bio_text"`
	BioHTML   string    `json:"bio_html"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse builds the public view. The rendered biography is supplied by
// the service so the model stays free of rendering concerns.
func (a *Author) ToResponse(bioHTML string) *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		BioText:   a.BioText,
		BioHTML:   bioHTML,
		Avatar:    a.Avatar,
		CreatedAt: a.CreatedAt,
	}
}
