package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/catalog"
)

// CatalogueBookRequest registers a new title, optionally with initial copies
type CatalogueBookRequest struct {
	Title           string `json:"title" binding:"required"`
	ISBN            string `json:"isbn" binding:"required"`
	AuthorName      string `json:"author_name" binding:"required"`
	PublisherName   string `json:"publisher_name"`
	GenreName       string `json:"genre_name"`
	PublicationYear int    `json:"publication_year"`
}

// ArchiveCopyRequest takes a copy out of circulation
type ArchiveCopyRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BookResponse is the read model for a book
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	ISBN            string    `json:"isbn"`
	AuthorName      string    `json:"author_name"`
	PublisherName   string    `json:"publisher_name"`
	GenreName       string    `json:"genre_name"`
	PublicationYear int       `json:"publication_year"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"created_at"`
	// AvailableCopies is populated on single-book reads only
	AvailableCopies *int64 `json:"available_copies,omitempty"`
}

// ToBookResponse maps a book to its read model
func ToBookResponse(book *catalog.Book) BookResponse {
	return BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		ISBN:            book.ISBN,
		AuthorName:      book.AuthorName,
		PublisherName:   book.PublisherName,
		GenreName:       book.GenreName,
		PublicationYear: book.PublicationYear,
		Archived:        book.Archived,
		CreatedAt:       book.CreatedAt,
	}
}

// CopyResponse is the read model for a copy
type CopyResponse struct {
	ID            uuid.UUID  `json:"id"`
	BookID        uuid.UUID  `json:"book_id"`
	CopyNumber    string     `json:"copy_number"`
	Status        string     `json:"status"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	ArchiveReason string     `json:"archive_reason,omitempty"`
}

// ToCopyResponse maps a copy to its read model
func ToCopyResponse(copy *catalog.Copy) CopyResponse {
	return CopyResponse{
		ID:            copy.ID,
		BookID:        copy.BookID,
		CopyNumber:    copy.CopyNumber,
		Status:        copy.Status.String(),
		ArchivedAt:    copy.ArchivedAt,
		ArchiveReason: copy.ArchiveReason,
	}
}
