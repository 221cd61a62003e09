package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublished(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		publishedAt *time.Time
		hiddenAt    *time.Time
		want        bool
	}{
		{"draft", nil, nil, false},
		{"published", &now, nil, true},
		{"hidden overrides publish", &now, &now, false},
		{"hidden draft", nil, &now, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Story{PublishedAt: tt.publishedAt, HiddenAt: tt.hiddenAt}
			assert.Equal(t, tt.want, s.Published())
		})
	}
}

func TestApplyPrivate(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-24 * time.Hour)

	t.Run("private clears publish timestamp", func(t *testing.T) {
		s := Story{PublishedAt: &earlier}
		s.ApplyPrivate(true, now)
		assert.Nil(t, s.PublishedAt)
	})

	t.Run("unprivate stamps a draft", func(t *testing.T) {
		s := Story{}
		s.ApplyPrivate(false, now)
		assert.Equal(t, &now, s.PublishedAt)
	})

	t.Run("unprivate keeps an existing timestamp", func(t *testing.T) {
		s := Story{PublishedAt: &earlier}
		s.ApplyPrivate(false, now)
		assert.Equal(t, &earlier, s.PublishedAt)
	})
}
