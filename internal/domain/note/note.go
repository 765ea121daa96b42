package note

import (
	"context"
	"time"
)

// Note is a user-authored journal reflection, the raw input to synthesis.
// Read-only to this service; note CRUD lives in the product's journaling
// surface.
type Note struct {
	ID        int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// Repository defines the read operations the toast engine needs over notes.
type Repository interface {
	// ListByUserAndDateRange returns the user's notes with
	// start <= created_at < end, in insertion order.
	ListByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]*Note, error)
}
