package acquisition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// AcquisitionService drives the purchase workflow from request to shelf
type AcquisitionService struct {
	acquisitionRepo acquisition.AcquisitionRepository
	vendorRepo      acquisition.VendorRepository
	paymentRepo     acquisition.VendorPaymentRepository
	bookRepo        catalog.BookRepository
	copyRepo        catalog.CopyRepository
	auditRepo       audit.Repository
	eventPublisher  shared.EventPublisher
	clock           shared.Clock
	logger          *zap.Logger
}

// NewAcquisitionService creates a new AcquisitionService
func NewAcquisitionService(
	acquisitionRepo acquisition.AcquisitionRepository,
	vendorRepo acquisition.VendorRepository,
	paymentRepo acquisition.VendorPaymentRepository,
	bookRepo catalog.BookRepository,
	copyRepo catalog.CopyRepository,
	auditRepo audit.Repository,
	clock shared.Clock,
	logger *zap.Logger,
) *AcquisitionService {
	return &AcquisitionService{
		acquisitionRepo: acquisitionRepo,
		vendorRepo:      vendorRepo,
		paymentRepo:     paymentRepo,
		bookRepo:        bookRepo,
		copyRepo:        copyRepo,
		auditRepo:       auditRepo,
		clock:           clock,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AcquisitionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RegisterVendor registers a book supplier
func (s *AcquisitionService) RegisterVendor(ctx context.Context, actorID uuid.UUID, req RegisterVendorRequest) (*VendorResponse, error) {
	existing, err := s.vendorRepo.FindByName(ctx, req.Name)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Vendor %q is already registered", req.Name))
	}

	vendor, err := acquisition.NewVendor(req.Name, req.ContactPerson, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "VENDOR_REGISTERED", fmt.Sprintf("Registered vendor %q", vendor.Name))
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Request opens a purchase request against an active vendor. The reference
// number is drawn from the acquisition sequence.
func (s *AcquisitionService) Request(ctx context.Context, requestedBy uuid.UUID, req RequestAcquisitionRequest) (*AcquisitionResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.Active {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Vendor %q is no longer active", vendor.Name))
	}

	sequence, err := s.acquisitionRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	referenceNo := fmt.Sprintf("ACQ%06d", sequence)

	acq, err := acquisition.NewAcquisition(
		referenceNo, req.VendorID, requestedBy,
		req.BookTitle, req.ISBN, req.AuthorName,
		req.Quantity, valueobject.NewMoneyPHP(req.UnitPrice),
	)
	if err != nil {
		return nil, err
	}
	if err := s.acquisitionRepo.Save(ctx, acq); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, acq.GetDomainEvents())
	acq.ClearDomainEvents()
	s.audit(ctx, requestedBy, "ACQUISITION_REQUESTED",
		fmt.Sprintf("Requested %d x %q from %q (%s)", req.Quantity, req.BookTitle, vendor.Name, referenceNo))

	resp := ToAcquisitionResponse(acq)
	return &resp, nil
}

// Approve moves a request forward for ordering
func (s *AcquisitionService) Approve(ctx context.Context, actorID, acquisitionID uuid.UUID) (*AcquisitionResponse, error) {
	return s.advance(ctx, actorID, acquisitionID, "ACQUISITION_APPROVED", func(acq *acquisition.Acquisition) error {
		return acq.Approve(s.clock.Now())
	})
}

// Reject closes a request with a reason
func (s *AcquisitionService) Reject(ctx context.Context, actorID, acquisitionID uuid.UUID, req RejectAcquisitionRequest) (*AcquisitionResponse, error) {
	return s.advance(ctx, actorID, acquisitionID, "ACQUISITION_REJECTED", func(acq *acquisition.Acquisition) error {
		return acq.Reject(req.Remarks, s.clock.Now())
	})
}

// MarkDelivered records receipt of the vendor shipment
func (s *AcquisitionService) MarkDelivered(ctx context.Context, actorID, acquisitionID uuid.UUID) (*AcquisitionResponse, error) {
	return s.advance(ctx, actorID, acquisitionID, "ACQUISITION_DELIVERED", func(acq *acquisition.Acquisition) error {
		return acq.MarkDelivered(s.clock.Now())
	})
}

// MarkChecked records that the delivered items passed inspection
func (s *AcquisitionService) MarkChecked(ctx context.Context, actorID, acquisitionID uuid.UUID) (*AcquisitionResponse, error) {
	return s.advance(ctx, actorID, acquisitionID, "ACQUISITION_CHECKED", func(acq *acquisition.Acquisition) error {
		return acq.MarkChecked(s.clock.Now())
	})
}

// Catalogue shelves a checked delivery: the title is catalogued if new, one
// numbered copy is created per ordered unit, and the vendor is paid.
func (s *AcquisitionService) Catalogue(ctx context.Context, actorID, acquisitionID uuid.UUID, req CatalogueAcquisitionRequest) (*CataloguedCopiesResponse, error) {
	acq, err := s.acquisitionRepo.FindByID(ctx, acquisitionID)
	if err != nil {
		return nil, err
	}
	if acq.Status != acquisition.AcquisitionStatusChecked {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Acquisition %s must be checked before cataloguing", acq.ReferenceNo))
	}

	book, err := s.resolveBook(ctx, acq, req)
	if err != nil {
		return nil, err
	}

	var sequence int
	if _, err := fmt.Sscanf(acq.ReferenceNo, "ACQ%06d", &sequence); err != nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Malformed acquisition reference %q", acq.ReferenceNo))
	}

	copyNumbers := make([]string, 0, acq.Quantity)
	for ordinal := 1; ordinal <= acq.Quantity; ordinal++ {
		copyNumber := acq.CopyNumber(sequence, ordinal)
		copy, err := catalog.NewCopy(book.ID, copyNumber)
		if err != nil {
			return nil, err
		}
		if err := s.copyRepo.Save(ctx, copy); err != nil {
			return nil, err
		}
		copyNumbers = append(copyNumbers, copyNumber)
	}

	now := s.clock.Now()
	payment, err := acquisition.NewVendorPayment(acq.ID, valueobject.NewMoneyPHP(req.PaymentAmount), req.PaymentMethod, req.PaymentRefNo, now)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if err := acq.MarkCatalogued(now); err != nil {
		return nil, err
	}
	if err := s.acquisitionRepo.Save(ctx, acq); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, acq.GetDomainEvents())
	acq.ClearDomainEvents()
	s.audit(ctx, actorID, "ACQUISITION_CATALOGUED",
		fmt.Sprintf("Shelved %d copies of %q under %s", acq.Quantity, acq.BookTitle, acq.ReferenceNo))

	return &CataloguedCopiesResponse{
		Acquisition: ToAcquisitionResponse(acq),
		BookID:      book.ID,
		CopyNumbers: copyNumbers,
		Payment:     ToVendorPaymentResponse(payment),
	}, nil
}

// Get retrieves one purchase request
func (s *AcquisitionService) Get(ctx context.Context, acquisitionID uuid.UUID) (*AcquisitionResponse, error) {
	acq, err := s.acquisitionRepo.FindByID(ctx, acquisitionID)
	if err != nil {
		return nil, err
	}
	resp := ToAcquisitionResponse(acq)
	return &resp, nil
}

// List retrieves purchase requests with pagination
// GetByReferenceNo retrieves an acquisition by its reference number
func (s *AcquisitionService) GetByReferenceNo(ctx context.Context, referenceNo string) (*AcquisitionResponse, error) {
	acq, err := s.acquisitionRepo.FindByReferenceNo(ctx, referenceNo)
	if err != nil {
		return nil, err
	}
	resp := ToAcquisitionResponse(acq)
	return &resp, nil
}

func (s *AcquisitionService) List(ctx context.Context, offset, limit int) ([]AcquisitionResponse, int64, error) {
	acqs, total, err := s.acquisitionRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]AcquisitionResponse, 0, len(acqs))
	for _, acq := range acqs {
		responses = append(responses, ToAcquisitionResponse(acq))
	}
	return responses, total, nil
}

// ListByStatus retrieves purchase requests in one workflow stage
func (s *AcquisitionService) ListByStatus(ctx context.Context, status acquisition.AcquisitionStatus, offset, limit int) ([]AcquisitionResponse, int64, error) {
	if !status.IsValid() {
		return nil, 0, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown status %q", status))
	}
	acqs, total, err := s.acquisitionRepo.ListByStatus(ctx, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]AcquisitionResponse, 0, len(acqs))
	for _, acq := range acqs {
		responses = append(responses, ToAcquisitionResponse(acq))
	}
	return responses, total, nil
}

// ListPayments retrieves the disbursements against one acquisition
func (s *AcquisitionService) ListPayments(ctx context.Context, acquisitionID uuid.UUID) ([]VendorPaymentResponse, error) {
	payments, err := s.paymentRepo.FindByAcquisition(ctx, acquisitionID)
	if err != nil {
		return nil, err
	}
	responses := make([]VendorPaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, ToVendorPaymentResponse(payment))
	}
	return responses, nil
}

// ListVendors retrieves suppliers with pagination
func (s *AcquisitionService) ListVendors(ctx context.Context, offset, limit int) ([]VendorResponse, int64, error) {
	vendors, total, err := s.vendorRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		responses = append(responses, ToVendorResponse(vendor))
	}
	return responses, total, nil
}

// resolveBook finds the catalogued title for a delivery, cataloguing it first
// when the ISBN is new.
func (s *AcquisitionService) resolveBook(ctx context.Context, acq *acquisition.Acquisition, req CatalogueAcquisitionRequest) (*catalog.Book, error) {
	if acq.ISBN != "" {
		book, err := s.bookRepo.FindByISBN(ctx, acq.ISBN)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if book != nil {
			return book, nil
		}
	}
	book, err := catalog.NewBook(acq.BookTitle, acq.ISBN, acq.AuthorName, req.PublisherName, req.GenreName, req.PublicationYear)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, book.GetDomainEvents())
	book.ClearDomainEvents()
	return book, nil
}

func (s *AcquisitionService) advance(ctx context.Context, actorID, acquisitionID uuid.UUID, action string, step func(*acquisition.Acquisition) error) (*AcquisitionResponse, error) {
	acq, err := s.acquisitionRepo.FindByID(ctx, acquisitionID)
	if err != nil {
		return nil, err
	}
	if err := step(acq); err != nil {
		return nil, err
	}
	if err := s.acquisitionRepo.Save(ctx, acq); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, acq.GetDomainEvents())
	acq.ClearDomainEvents()
	s.audit(ctx, actorID, action, fmt.Sprintf("%s for %s", action, acq.ReferenceNo))
	resp := ToAcquisitionResponse(acq)
	return &resp, nil
}

func (s *AcquisitionService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}

func (s *AcquisitionService) audit(ctx context.Context, actorID uuid.UUID, action, details string) {
	entry, err := audit.NewEntry(actorID, action, details, s.clock.Now())
	if err != nil {
		s.logger.Warn("Failed to build audit entry", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.auditRepo.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.String("action", action), zap.Error(err))
	}
}
