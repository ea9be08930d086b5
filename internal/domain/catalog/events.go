package catalog

import (
	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Event type constants for the catalog context
const (
	EventTypeBookCatalogued = "catalog.book_catalogued"
	EventTypeCopyArchived   = "catalog.copy_archived"
	EventTypeCopyRestored   = "catalog.copy_restored"
)

// BookCataloguedEvent is raised when a new book enters the catalog
type BookCataloguedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// NewBookCataloguedEvent creates a BookCataloguedEvent
func NewBookCataloguedEvent(book *Book) *BookCataloguedEvent {
	return &BookCataloguedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookCatalogued, book.ID, "Book"),
		Title:           book.Title,
		ISBN:            book.ISBN,
	}
}

// CopyArchivedEvent is raised when a copy is taken out of circulation
type CopyArchivedEvent struct {
	shared.BaseDomainEvent
	BookID     uuid.UUID `json:"book_id"`
	CopyNumber string    `json:"copy_number"`
	Reason     string    `json:"reason"`
}

// NewCopyArchivedEvent creates a CopyArchivedEvent
func NewCopyArchivedEvent(copy *Copy, reason string) *CopyArchivedEvent {
	return &CopyArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCopyArchived, copy.ID, "Copy"),
		BookID:          copy.BookID,
		CopyNumber:      copy.CopyNumber,
		Reason:          reason,
	}
}

// CopyRestoredEvent is raised when a copy returns to the shelf
type CopyRestoredEvent struct {
	shared.BaseDomainEvent
	BookID     uuid.UUID `json:"book_id"`
	CopyNumber string    `json:"copy_number"`
}

// NewCopyRestoredEvent creates a CopyRestoredEvent
func NewCopyRestoredEvent(copy *Copy) *CopyRestoredEvent {
	return &CopyRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCopyRestored, copy.ID, "Copy"),
		BookID:          copy.BookID,
		CopyNumber:      copy.CopyNumber,
	}
}
