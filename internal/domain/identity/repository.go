package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for user accounts
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	ListByRole(ctx context.Context, role UserRole, offset, limit int) ([]*User, int64, error)
	Save(ctx context.Context, user *User) error
}
