package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Entry is a single append-only audit record of a staff or system action
type Entry struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Action  string
	Details string
}

// NewEntry records who did what
func NewEntry(userID uuid.UUID, action, details string, now time.Time) (*Entry, error) {
	if action == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Audit action cannot be empty")
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntityAt(now),
		UserID:     userID,
		Action:     action,
		Details:    details,
	}, nil
}

// Repository defines the persistence interface for the audit trail.
// Entries are append only.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	List(ctx context.Context, offset, limit int) ([]*Entry, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*Entry, int64, error)
	ListByAction(ctx context.Context, action string, offset, limit int) ([]*Entry, int64, error)
}
