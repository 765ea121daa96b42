package user

import "context"

// Repository defines the read operations the toast engine needs over users.
// User CRUD itself belongs to the product's account surface, outside scope.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	// ListActive returns active, non-test users: the population a scheduled
	// tick enumerates.
	ListActive(ctx context.Context) ([]*User, error)
}
