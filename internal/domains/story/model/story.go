package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxTitleLength   = 64
	MaxTaglineLength = 64
	MaxTeaserLength  = 140
	DefaultLanguage  = "en"
)

// SupportedLanguages are the language tags a story may carry.
var SupportedLanguages = []interface{}{"en", "de", "es", "fr", "pt"}

// Story is a single narrative unit. Visibility is controlled by two
// timestamps: published_at (nil = draft/private) and hidden_at (set by
// moderation, overrides everything else).
//
// Two nullable self-references link stories together: inspired_by points at
// the story that motivated this one, preceded_by at the previous chapter of
// an authored sequence. Both are reference-preserving - a story cannot be
// deleted while another story points at it.
type Story struct {
	ID           uuid.UUID  `json:"id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	Title        string     `json:"title"`
	Tagline      string     `json:"tagline"`
	Teaser       *string    `json:"teaser"`
	Text         string     `json:"text"`
	Language     string     `json:"language"`
	LicenseID    *uuid.UUID `json:"license_id"`
	PublishedAt  *time.Time `json:"published_at"`
	HiddenAt     *time.Time `json:"hidden_at"`
	InspiredByID *uuid.UUID `json:"inspired_by_id"`
	PrecededByID *uuid.UUID `json:"preceded_by_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Published reports whether the story is visible to the public:
// not hidden and carrying a publish timestamp.
func (s *Story) Published() bool {
	return s.HiddenAt == nil && s.PublishedAt != nil
}

// ApplyPrivate drives the publish timestamp from the private checkbox:
// private clears it; un-private stamps it iff it was never set, so editing a
// published story never resets its publish time.
func (s *Story) ApplyPrivate(private bool, now time.Time) {
	if private {
		s.PublishedAt = nil
	} else if s.PublishedAt == nil {
		s.PublishedAt = &now
	}
}

// StoryFilter narrows published-story listings.
type StoryFilter struct {
	AuthorID     *uuid.UUID
	InspiredByID *uuid.UUID
	Limit        int
	Offset       int
}
