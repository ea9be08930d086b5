package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// CatalogService manages books and their physical copies
type CatalogService struct {
	bookRepo       catalog.BookRepository
	copyRepo       catalog.CopyRepository
	auditRepo      audit.Repository
	eventPublisher shared.EventPublisher
	clock          shared.Clock
	logger         *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	bookRepo catalog.BookRepository,
	copyRepo catalog.CopyRepository,
	auditRepo audit.Repository,
	clock shared.Clock,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		bookRepo:  bookRepo,
		copyRepo:  copyRepo,
		auditRepo: auditRepo,
		clock:     clock,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CatalogService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CatalogueBook registers a new title. The ISBN must be unique.
func (s *CatalogService) CatalogueBook(ctx context.Context, actorID uuid.UUID, req CatalogueBookRequest) (*BookResponse, error) {
	existing, err := s.bookRepo.FindByISBN(ctx, req.ISBN)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("A book with ISBN %s is already catalogued", req.ISBN))
	}

	book, err := catalog.NewBook(req.Title, req.ISBN, req.AuthorName, req.PublisherName, req.GenreName, req.PublicationYear)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, book.GetDomainEvents())
	book.ClearDomainEvents()
	s.audit(ctx, actorID, "BOOK_CATALOGUED", fmt.Sprintf("Catalogued %q (ISBN %s)", req.Title, req.ISBN))

	resp := ToBookResponse(book)
	return &resp, nil
}

// AddCopy shelves a new physical copy of an existing book
func (s *CatalogService) AddCopy(ctx context.Context, actorID, bookID uuid.UUID, copyNumber string) (*CopyResponse, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	existing, err := s.copyRepo.FindByCopyNumber(ctx, copyNumber)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Copy number %s is already in use", copyNumber))
	}

	copy, err := catalog.NewCopy(bookID, copyNumber)
	if err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "COPY_ADDED", fmt.Sprintf("Added copy %s", copyNumber))

	resp := ToCopyResponse(copy)
	return &resp, nil
}

// ArchiveCopy takes a copy out of circulation. Copies on loan cannot be archived.
func (s *CatalogService) ArchiveCopy(ctx context.Context, actorID, copyID uuid.UUID, req ArchiveCopyRequest) (*CopyResponse, error) {
	copy, err := s.copyRepo.FindByID(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if err := copy.Archive(req.Reason, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, copy.GetDomainEvents())
	copy.ClearDomainEvents()
	s.audit(ctx, actorID, "COPY_ARCHIVED", fmt.Sprintf("Archived copy %s: %s", copy.CopyNumber, req.Reason))

	resp := ToCopyResponse(copy)
	return &resp, nil
}

// RestoreCopy returns an archived, lost, or damaged copy to the shelf
func (s *CatalogService) RestoreCopy(ctx context.Context, actorID, copyID uuid.UUID) (*CopyResponse, error) {
	copy, err := s.copyRepo.FindByID(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if err := copy.Restore(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, copy.GetDomainEvents())
	copy.ClearDomainEvents()
	s.audit(ctx, actorID, "COPY_RESTORED", fmt.Sprintf("Restored copy %s", copy.CopyNumber))

	resp := ToCopyResponse(copy)
	return &resp, nil
}

// ArchiveBook removes a title from circulation listings. Its copies keep
// their own lifecycle and must be archived individually.
func (s *CatalogService) ArchiveBook(ctx context.Context, actorID, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := book.Archive(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "BOOK_ARCHIVED", fmt.Sprintf("Archived %q (ISBN %s)", book.Title, book.ISBN))

	resp := ToBookResponse(book)
	return &resp, nil
}

// RestoreBook returns an archived title to circulation listings
func (s *CatalogService) RestoreBook(ctx context.Context, actorID, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := book.Restore(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "BOOK_RESTORED", fmt.Sprintf("Restored %q (ISBN %s)", book.Title, book.ISBN))

	resp := ToBookResponse(book)
	return &resp, nil
}

// GetBook retrieves a book by ID along with its available-copy count
func (s *CatalogService) GetBook(ctx context.Context, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	available, err := s.copyRepo.CountByBookAndStatus(ctx, bookID, catalog.CopyStatusAvailable)
	if err != nil {
		return nil, err
	}
	resp := ToBookResponse(book)
	resp.AvailableCopies = &available
	return &resp, nil
}

// SearchBooks searches titles, authors and ISBNs
func (s *CatalogService) SearchBooks(ctx context.Context, query string, limit int) ([]BookResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	books, err := s.bookRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, ToBookResponse(&books[i]))
	}
	return responses, nil
}

// ListCopies retrieves all copies of a book
func (s *CatalogService) ListCopies(ctx context.Context, bookID uuid.UUID) ([]CopyResponse, error) {
	copies, err := s.copyRepo.FindByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	responses := make([]CopyResponse, 0, len(copies))
	for i := range copies {
		responses = append(responses, ToCopyResponse(&copies[i]))
	}
	return responses, nil
}

// ListArchivedCopies retrieves every copy currently out of circulation
func (s *CatalogService) ListArchivedCopies(ctx context.Context) ([]CopyResponse, error) {
	copies, err := s.copyRepo.FindArchived(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CopyResponse, 0, len(copies))
	for i := range copies {
		responses = append(responses, ToCopyResponse(&copies[i]))
	}
	return responses, nil
}

func (s *CatalogService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
}

func (s *CatalogService) audit(ctx context.Context, actorID uuid.UUID, action, details string) {
	entry, err := audit.NewEntry(actorID, action, details, s.clock.Now())
	if err != nil {
		s.logger.Warn("Failed to build audit entry", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.auditRepo.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.String("action", action), zap.Error(err))
	}
}
