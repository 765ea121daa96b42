package database

import (
	"context"
	"database/sql"
	"fmt"

	"weekly_toast_bot/internal/domain/user"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrUserNotFound = fmt.Errorf("user not found")

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT id, display_name, timezone, weekly_toast_day, voice_style, is_active, is_test, created_at, updated_at
               FROM users WHERE id = $1`
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.DisplayName, &u.Timezone, &u.WeeklyToastDay, &u.VoiceStyle,
		&u.IsActive, &u.IsTest, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return u, nil
}

// ListActive returns active users, excluding synthetic test accounts. This is
// the population a scheduled tick enumerates.
func (r *PostgresUserRepository) ListActive(ctx context.Context) ([]*user.User, error) {
	query := `SELECT id, display_name, timezone, weekly_toast_day, voice_style, is_active, is_test, created_at, updated_at
               FROM users WHERE is_active = TRUE AND is_test = FALSE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(
			&u.ID, &u.DisplayName, &u.Timezone, &u.WeeklyToastDay, &u.VoiceStyle,
			&u.IsActive, &u.IsTest, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning active user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active users: %w", err)
	}
	return users, nil
}
