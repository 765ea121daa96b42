package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresActivityRepository implements activity.Logger against the
// activity_log table. Callers treat logging as best-effort.
type PostgresActivityRepository struct {
	db *sql.DB
}

func NewPostgresActivityRepository(db *sql.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Log(ctx context.Context, userID int64, eventType string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	payload, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("error encoding activity metadata: %w", err)
	}

	query := `INSERT INTO activity_log (user_id, event_type, metadata) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, userID, eventType, payload); err != nil {
		return fmt.Errorf("error writing activity log entry: %w", err)
	}
	return nil
}
