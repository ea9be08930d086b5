package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// CopyStatus represents the circulation status of a physical copy
type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "AVAILABLE"
	CopyStatusBorrowed  CopyStatus = "BORROWED"
	CopyStatusOverdue   CopyStatus = "OVERDUE"
	CopyStatusLost      CopyStatus = "LOST"
	CopyStatusDamaged   CopyStatus = "DAMAGED"
	CopyStatusArchived  CopyStatus = "ARCHIVED"
)

// IsValid checks if the status is a valid CopyStatus
func (s CopyStatus) IsValid() bool {
	switch s {
	case CopyStatusAvailable, CopyStatusBorrowed, CopyStatusOverdue,
		CopyStatusLost, CopyStatusDamaged, CopyStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of CopyStatus
func (s CopyStatus) String() string {
	return string(s)
}

// OnLoan reports whether the copy is held by an open loan
func (s CopyStatus) OnLoan() bool {
	return s == CopyStatusBorrowed || s == CopyStatusOverdue
}

// Copy represents one physical, uniquely numbered instance of a Book.
// Its status always mirrors the most recent non-terminal loan holding it.
type Copy struct {
	shared.BaseAggregateRoot
	BookID        uuid.UUID
	CopyNumber    string
	Status        CopyStatus
	ArchivedAt    *time.Time
	ArchiveReason string
}

// NewCopy creates a new available copy
func NewCopy(bookID uuid.UUID, copyNumber string) (*Copy, error) {
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Book ID cannot be empty")
	}
	if copyNumber == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Copy number cannot be empty")
	}
	return &Copy{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookID:            bookID,
		CopyNumber:        copyNumber,
		Status:            CopyStatusAvailable,
	}, nil
}

// SetStatus overwrites the circulation status. The loan ledger is the only
// caller for the loan-driven states; the copy keeps no transition table of
// its own because its status is derived from the loan's.
func (c *Copy) SetStatus(status CopyStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown copy status %q", status))
	}
	c.Status = status
	c.UpdatedAt = now
	return nil
}

// Archive takes the copy out of circulation. A copy on loan cannot be archived.
func (c *Copy) Archive(reason string, now time.Time) error {
	if reason == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Archive reason is required")
	}
	if c.Status.OnLoan() {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot archive a copy that is on loan")
	}
	if c.Status == CopyStatusArchived {
		return shared.NewDomainError(shared.CodeInvalidState, "Copy is already archived")
	}
	c.Status = CopyStatusArchived
	c.ArchivedAt = &now
	c.ArchiveReason = reason
	c.UpdatedAt = now
	c.AddDomainEvent(NewCopyArchivedEvent(c, reason))
	return nil
}

// Restore returns an archived, lost, or damaged copy to the shelf
func (c *Copy) Restore(now time.Time) error {
	switch c.Status {
	case CopyStatusArchived, CopyStatusLost, CopyStatusDamaged:
	default:
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot restore a copy in %s status", c.Status))
	}
	c.Status = CopyStatusAvailable
	c.ArchivedAt = nil
	c.ArchiveReason = ""
	c.UpdatedAt = now
	c.AddDomainEvent(NewCopyRestoredEvent(c))
	return nil
}
