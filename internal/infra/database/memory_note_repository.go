package database

import (
	"context"
	"sync"
	"time"

	"weekly_toast_bot/internal/domain/note"
)

// MemoryNoteRepository is an in-memory note.Repository. Simulated runs and
// tests inject it behind the same interface the Postgres repository
// implements, so the pipeline logic stays single-sourced.
type MemoryNoteRepository struct {
	mu     sync.RWMutex
	nextID int64
	notes  []*note.Note
}

func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{nextID: 1}
}

// Add stores a note and returns it with an assigned ID.
func (r *MemoryNoteRepository) Add(userID int64, content string, createdAt time.Time) *note.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := &note.Note{
		ID:        r.nextID,
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	r.nextID++
	r.notes = append(r.notes, n)
	return n
}

func (r *MemoryNoteRepository) ListByUserAndDateRange(_ context.Context, userID int64, start, end time.Time) ([]*note.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*note.Note, 0)
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		if n.CreatedAt.Before(start) || !n.CreatedAt.Before(end) {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}
