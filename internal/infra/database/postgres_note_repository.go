package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weekly_toast_bot/internal/domain/note"
)

type PostgresNoteRepository struct {
	db *sql.DB
}

func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

// ListByUserAndDateRange returns the user's notes with start <= created_at < end,
// in insertion order.
func (r *PostgresNoteRepository) ListByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]*note.Note, error) {
	query := `SELECT id, user_id, content, created_at
               FROM notes
               WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
               ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing notes for user %d: %w", userID, err)
	}
	defer rows.Close()

	notes := make([]*note.Note, 0)
	for rows.Next() {
		n := &note.Note{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}
