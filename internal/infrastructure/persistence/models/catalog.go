package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfmaster/backend/internal/domain/catalog"
)

// BookModel is the persistence model for the Book aggregate
type BookModel struct {
	AggregateModel
	Title           string     `gorm:"type:varchar(255);not null;index"`
	ISBN            string     `gorm:"type:varchar(20);index"`
	AuthorName      string     `gorm:"type:varchar(200);index"`
	PublisherName   string     `gorm:"type:varchar(200)"`
	GenreName       string     `gorm:"type:varchar(100)"`
	PublicationYear int        `gorm:"default:0"`
	Archived        bool       `gorm:"not null;default:false;index"`
	ArchivedAt      *time.Time
}

// TableName returns the table name for GORM
func (BookModel) TableName() string {
	return "books"
}

// ToDomain converts the persistence model to a domain Book
func (m *BookModel) ToDomain() *catalog.Book {
	return &catalog.Book{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		ISBN:              m.ISBN,
		AuthorName:        m.AuthorName,
		PublisherName:     m.PublisherName,
		GenreName:         m.GenreName,
		PublicationYear:   m.PublicationYear,
		Archived:          m.Archived,
		ArchivedAt:        m.ArchivedAt,
	}
}

// BookModelFromDomain creates a persistence model from a domain Book
func BookModelFromDomain(b *catalog.Book) *BookModel {
	m := &BookModel{
		Title:           b.Title,
		ISBN:            b.ISBN,
		AuthorName:      b.AuthorName,
		PublisherName:   b.PublisherName,
		GenreName:       b.GenreName,
		PublicationYear: b.PublicationYear,
		Archived:        b.Archived,
		ArchivedAt:      b.ArchivedAt,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// CopyModel is the persistence model for the Copy aggregate
type CopyModel struct {
	AggregateModel
	BookID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	CopyNumber    string             `gorm:"type:varchar(30);not null;uniqueIndex"`
	Status        catalog.CopyStatus `gorm:"type:varchar(20);not null;index"`
	ArchivedAt    *time.Time
	ArchiveReason string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CopyModel) TableName() string {
	return "copies"
}

// ToDomain converts the persistence model to a domain Copy
func (m *CopyModel) ToDomain() *catalog.Copy {
	return &catalog.Copy{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BookID:            m.BookID,
		CopyNumber:        m.CopyNumber,
		Status:            m.Status,
		ArchivedAt:        m.ArchivedAt,
		ArchiveReason:     m.ArchiveReason,
	}
}

// CopyModelFromDomain creates a persistence model from a domain Copy
func CopyModelFromDomain(c *catalog.Copy) *CopyModel {
	m := &CopyModel{
		BookID:        c.BookID,
		CopyNumber:    c.CopyNumber,
		Status:        c.Status,
		ArchivedAt:    c.ArchivedAt,
		ArchiveReason: c.ArchiveReason,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
