package model

import (
	"time"

	"github.com/google/uuid"
)

const MaxTitleLength = 64

// Entry is a diary-journal item. It shares the story publish/hide state
// machine but carries no relational links, and listing only requires the
// entry to not be hidden; an unpublished entry still lists, with its text
// substituted at read time.
type Entry struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PublishedAt *time.Time `json:"published_at"`
	HiddenAt    *time.Time `json:"hidden_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Entry) Published() bool {
	return e.HiddenAt == nil && e.PublishedAt != nil
}

// ApplyPrivate mirrors the story private checkbox: private clears the
// publish timestamp, un-private stamps it only when it was never set.
func (e *Entry) ApplyPrivate(private bool, now time.Time) {
	if private {
		e.PublishedAt = nil
	} else if e.PublishedAt == nil {
		e.PublishedAt = &now
	}
}
