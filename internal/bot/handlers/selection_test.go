package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionStoreLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSelectionStore()

	_, ok := s.Get(1)
	assert.False(t, ok, "fresh store has no selection")

	s.Set(1, -100)
	groupID, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, int64(-100), groupID)

	// Selecting again replaces the previous choice.
	s.Set(1, -200)
	groupID, ok = s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, int64(-200), groupID)
}

func TestSelectionStoreIsPerUser(t *testing.T) {
	t.Parallel()

	s := NewSelectionStore()
	s.Set(1, -100)
	s.Set(2, -200)

	g1, _ := s.Get(1)
	g2, _ := s.Get(2)
	assert.Equal(t, int64(-100), g1)
	assert.Equal(t, int64(-200), g2)
}
