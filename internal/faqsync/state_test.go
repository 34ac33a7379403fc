package faqsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateIsDue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, State{}.IsDue(now), "never synced")
	assert.False(t, State{LastSync: now.Add(-30 * time.Second)}.IsDue(now))
	assert.True(t, State{LastSync: now.Add(-60 * time.Second)}.IsDue(now))
	assert.True(t, State{LastSync: now.Add(-5 * time.Second), MinInterval: time.Second}.IsDue(now))
}

func TestStateShouldSync(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := State{LastHash: "abc", LastSync: now.Add(-2 * time.Minute)}

	assert.False(t, s.ShouldSync(now, "abc"), "unchanged content")
	assert.True(t, s.ShouldSync(now, "def"))

	s.LastSync = now.Add(-10 * time.Second)
	assert.False(t, s.ShouldSync(now, "def"), "too recent")
}

func TestStateSynced(t *testing.T) {
	now := time.Now()
	s := State{MinInterval: time.Minute}.Synced(now, "h")
	assert.Equal(t, "h", s.LastHash)
	assert.Equal(t, now, s.LastSync)
	assert.Equal(t, time.Minute, s.MinInterval)
}
