package model

import (
	"time"

	"github.com/google/uuid"
)

const MaxNameLength = 64

// Author is a pseudonym owned by a login identity. All published content is
// attributed to an Author, never to the identity behind it. One identity may
// hold several pseudonyms.
type Author struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	BioText   string    `json:"bio_text"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy reports whether the given identity owns this pseudonym.
func (a *Author) OwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
