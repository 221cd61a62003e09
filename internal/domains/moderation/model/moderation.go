package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Flag reasons.
const (
	ReasonHateSpeech = "hate_speech"
	ReasonSpam       = "spam"
	ReasonExplicit   = "explicit"
)

// Vote directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// ContentRef names exactly one content item, story or entry.
type ContentRef struct {
	StoryID *uuid.UUID
	EntryID *uuid.UUID
}

func (r ContentRef) Valid() bool {
	return (r.StoryID != nil) != (r.EntryID != nil)
}

// Flag is an append-only moderation report. UserID is nil for anonymous
// reports. Flags are never updated or deduplicated.
type Flag struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	StoryID   *uuid.UUID `json:"story_id"`
	EntryID   *uuid.UUID `json:"entry_id"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"created_at"`
}

// Vote is an append-only engagement record, one row per cast vote.
type Vote struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	StoryID   *uuid.UUID `json:"story_id"`
	EntryID   *uuid.UUID `json:"entry_id"`
	Direction string     `json:"direction"`
	CreatedAt time.Time  `json:"created_at"`
}

type CreateFlagRequest struct {
	Reason string `json:"reason"`
}

func (r CreateFlagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Required,
			validation.In(ReasonHateSpeech, ReasonSpam, ReasonExplicit)),
	)
}

type CreateVoteRequest struct {
	Direction string `json:"direction"`
}

func (r CreateVoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Direction, validation.Required,
			validation.In(DirectionUp, DirectionDown)),
	)
}

// VoteSummary aggregates the vote log for one content item. Score is
// ups minus downs; Ratio is ups over total, zero when nothing was cast.
type VoteSummary struct {
	Ups   int64           `json:"ups"`
	Downs int64           `json:"downs"`
	Score decimal.Decimal `json:"score"`
	Ratio decimal.Decimal `json:"ratio"`
}

func NewVoteSummary(ups, downs int64) *VoteSummary {
	summary := &VoteSummary{
		Ups:   ups,
		Downs: downs,
		Score: decimal.NewFromInt(ups - downs),
		Ratio: decimal.Zero,
	}
	if total := ups + downs; total > 0 {
		summary.Ratio = decimal.NewFromInt(ups).
			Div(decimal.NewFromInt(total)).
			Round(4)
	}
	return summary
}
