package catalog

import (
	"time"

	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Book represents a cataloged title. Physical inventory is tracked per Copy.
type Book struct {
	shared.BaseAggregateRoot
	Title           string
	ISBN            string
	AuthorName      string
	PublisherName   string
	GenreName       string
	PublicationYear int
	Archived        bool
	ArchivedAt      *time.Time
}

// NewBook creates a new book
func NewBook(title, isbn, authorName, publisherName, genreName string, publicationYear int) (*Book, error) {
	if title == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Book title cannot be empty")
	}
	if len(title) > 255 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Book title cannot exceed 255 characters")
	}
	if publicationYear != 0 && (publicationYear < 1000 || publicationYear > 2100) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Publication year out of range")
	}

	book := &Book{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		ISBN:              isbn,
		AuthorName:        authorName,
		PublisherName:     publisherName,
		GenreName:         genreName,
		PublicationYear:   publicationYear,
	}
	book.AddDomainEvent(NewBookCataloguedEvent(book))
	return book, nil
}

// Archive removes the book from circulation listings
func (b *Book) Archive(now time.Time) error {
	if b.Archived {
		return shared.NewDomainError(shared.CodeInvalidState, "Book is already archived")
	}
	b.Archived = true
	b.ArchivedAt = &now
	b.UpdatedAt = now
	return nil
}

// Restore returns an archived book to circulation listings
func (b *Book) Restore(now time.Time) error {
	if !b.Archived {
		return shared.NewDomainError(shared.CodeInvalidState, "Book is not archived")
	}
	b.Archived = false
	b.ArchivedAt = nil
	b.UpdatedAt = now
	return nil
}
