package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNoteRepository_RangeAndOrder(t *testing.T) {
	repo := NewMemoryNoteRepository()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	repo.Add(1, "too old", now.AddDate(0, 0, -10))
	first := repo.Add(1, "first", now.Add(-48*time.Hour))
	second := repo.Add(1, "second", now.Add(-24*time.Hour))
	repo.Add(2, "other user", now.Add(-24*time.Hour))
	repo.Add(1, "at end, excluded", now)

	notes, err := repo.ListByUserAndDateRange(context.Background(), 1, now.AddDate(0, 0, -7), now)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first.ID, notes[0].ID)
	assert.Equal(t, second.ID, notes[1].ID)
	assert.Equal(t, "first", notes[0].Content)
}
