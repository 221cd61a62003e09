package model

import (
	"time"

	"github.com/google/uuid"
)

// License is a named text template a story may be published under.
// Active licenses are exactly those with unpublished_at unset; retiring a
// license removes it from selection without touching stories that already
// carry it.
type License struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Text          string     `json:"text"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	PublishedAt   *time.Time `json:"published_at"`
	UnpublishedAt *time.Time `json:"unpublished_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (l *License) Active() bool {
	return l.UnpublishedAt == nil
}

type LicenseResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Text string    `json:"text"`
}

func (l *License) ToResponse() *LicenseResponse {
	return &LicenseResponse{ID: l.ID, Name: l.Name, Text: l.Text}
}
