package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weekly_toast_bot/internal/domain/toast"

	"github.com/lib/pq" // For pq.Array and error-code mapping
)

// Custom errors specific to the toast repository
var ErrToastNotFound = fmt.Errorf("toast not found")
var ErrDuplicateToast = fmt.Errorf("toast already exists for this user, type and interval")

// Postgres error codes: unique_violation and exclusion_violation. The
// toasts_no_overlap constraint raises the latter when two intervals of the
// same (user_id, toast_type) overlap.
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

type PostgresToastRepository struct {
	db *sql.DB
}

func NewPostgresToastRepository(db *sql.DB) *PostgresToastRepository {
	return &PostgresToastRepository{db: db}
}

func (r *PostgresToastRepository) Create(ctx context.Context, t *toast.Toast) error {
	query := `INSERT INTO toasts (user_id, content, audio_url, narration_error, note_ids, toast_type, interval_start, interval_end)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		t.UserID, t.Content, t.AudioURL, t.NarrationError,
		pq.Array(t.NoteIDs), t.Type, t.IntervalStart, t.IntervalEnd,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == pqUniqueViolation || pqErr.Code == pqExclusionViolation) {
			return ErrDuplicateToast
		}
		return fmt.Errorf("error creating toast: %w", err)
	}
	return nil
}

// UpdateNarration records the terminal narration outcome for a toast. It is
// called exactly once per toast after the narration attempt.
func (r *PostgresToastRepository) UpdateNarration(ctx context.Context, id int64, audioURL, narrationError sql.NullString) error {
	query := `UPDATE toasts SET audio_url = $1, narration_error = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, audioURL, narrationError, id)
	if err != nil {
		return fmt.Errorf("error updating toast narration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking toast narration update: %w", err)
	}
	if affected == 0 {
		return ErrToastNotFound
	}
	return nil
}

func (r *PostgresToastRepository) GetByID(ctx context.Context, id int64) (*toast.Toast, error) {
	query := `SELECT id, user_id, content, audio_url, narration_error, note_ids, toast_type, interval_start, interval_end, created_at
               FROM toasts WHERE id = $1`
	t := &toast.Toast{}
	var noteIDs pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.Content, &t.AudioURL, &t.NarrationError,
		&noteIDs, &t.Type, &t.IntervalStart, &t.IntervalEnd, &t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrToastNotFound
		}
		return nil, fmt.Errorf("error getting toast by ID: %w", err)
	}
	t.NoteIDs = noteIDs
	return t, nil
}

// ListByUserAndTypeSince returns the user's toasts of the given type created
// at or after 'since', newest first.
func (r *PostgresToastRepository) ListByUserAndTypeSince(ctx context.Context, userID int64, toastType toast.Type, since time.Time) ([]*toast.Toast, error) {
	query := `SELECT id, user_id, content, audio_url, narration_error, note_ids, toast_type, interval_start, interval_end, created_at
               FROM toasts
               WHERE user_id = $1 AND toast_type = $2 AND created_at >= $3
               ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, toastType, since)
	if err != nil {
		return nil, fmt.Errorf("error listing toasts for user %d: %w", userID, err)
	}
	defer rows.Close()

	toasts := make([]*toast.Toast, 0)
	for rows.Next() {
		t := &toast.Toast{}
		var noteIDs pq.Int64Array
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Content, &t.AudioURL, &t.NarrationError,
			&noteIDs, &t.Type, &t.IntervalStart, &t.IntervalEnd, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning toast: %w", err)
		}
		t.NoteIDs = noteIDs
		toasts = append(toasts, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating toasts: %w", err)
	}
	return toasts, nil
}
