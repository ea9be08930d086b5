package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// MarketPriceResolver looks up the replacement price of a lost book.
// A nil result with a nil error means the price could not be resolved and
// the fine must be entered manually.
type MarketPriceResolver interface {
	ResolveLostFine(ctx context.Context, isbn string) (*valueobject.Money, error)
}

// LoanService is the sole authority for transitioning a loan between states
// and keeping its copy's status mirrored.
type LoanService struct {
	loanRepo       lending.LoanRepository
	penaltyRepo    lending.PenaltyRepository
	paymentRepo    lending.PaymentRepository
	copyRepo       catalog.CopyRepository
	bookRepo       catalog.BookRepository
	userRepo       identity.UserRepository
	auditRepo      audit.Repository
	priceResolver  MarketPriceResolver
	eventPublisher shared.EventPublisher
	clock          shared.Clock
	logger         *zap.Logger
}

// NewLoanService creates a new LoanService
func NewLoanService(
	loanRepo lending.LoanRepository,
	penaltyRepo lending.PenaltyRepository,
	paymentRepo lending.PaymentRepository,
	copyRepo catalog.CopyRepository,
	bookRepo catalog.BookRepository,
	userRepo identity.UserRepository,
	auditRepo audit.Repository,
	priceResolver MarketPriceResolver,
	clock shared.Clock,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		loanRepo:      loanRepo,
		penaltyRepo:   penaltyRepo,
		paymentRepo:   paymentRepo,
		copyRepo:      copyRepo,
		bookRepo:      bookRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		priceResolver: priceResolver,
		clock:         clock,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *LoanService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Issue lends an available copy to a borrower
func (s *LoanService) Issue(ctx context.Context, actorID uuid.UUID, req IssueLoanRequest) (*LoanResponse, error) {
	now := s.clock.Now()

	borrower, err := s.userRepo.FindByID(ctx, req.BorrowerID)
	if err != nil {
		return nil, err
	}
	if !borrower.IsActive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Borrower account is inactive")
	}

	copy, err := s.resolveCopy(ctx, req)
	if err != nil {
		return nil, err
	}
	if copy.Status != catalog.CopyStatusAvailable {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Copy %s is not available for lending", copy.CopyNumber))
	}

	// Cross-copy duplicate check: the same book may not be held twice
	holdsBook, err := s.loanRepo.ExistsUnreturnedForBook(ctx, req.BorrowerID, copy.BookID)
	if err != nil {
		return nil, err
	}
	if holdsBook {
		return nil, shared.NewDomainError(shared.CodePolicyViolation,
			"Borrower already holds an unreturned copy of this book")
	}

	activeCount, err := s.loanRepo.CountActiveByBorrower(ctx, req.BorrowerID)
	if err != nil {
		return nil, err
	}
	if !lending.CanIssue(int(activeCount), 1) {
		return nil, shared.NewDomainError(shared.CodePolicyViolation,
			fmt.Sprintf("Borrowing limit of %d active loans reached", lending.MaxActiveLoans))
	}

	loan, err := lending.NewLoan(req.BorrowerID, copy.ID, copy.BookID, req.DueDate, now)
	if err != nil {
		return nil, err
	}
	if err := copy.SetStatus(catalog.CopyStatusBorrowed, now); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, loan)
	s.audit(ctx, actorID, "LOAN_ISSUED",
		fmt.Sprintf("Issued copy %s to borrower %s, due %s", copy.CopyNumber, borrower.Username, req.DueDate.Format("2006-01-02")))

	resp := ToLoanResponse(loan)
	return &resp, nil
}

// resolveCopy finds the copy to lend: a scanned copy when the request names
// one, otherwise any Available copy of the requested book.
func (s *LoanService) resolveCopy(ctx context.Context, req IssueLoanRequest) (*catalog.Copy, error) {
	if req.CopyID != uuid.Nil {
		return s.copyRepo.FindByID(ctx, req.CopyID)
	}
	if req.BookID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Either copy_id or book_id is required")
	}
	copy, err := s.copyRepo.FindAvailableByBook(ctx, req.BookID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "No available copy of this book")
		}
		return nil, err
	}
	return copy, nil
}

// Return completes a loan and puts the copy back on the shelf, unless an
// open lost or damaged penalty keeps it out of circulation.
func (s *LoanService) Return(ctx context.Context, actorID, loanID uuid.UUID) (*LoanResponse, error) {
	now := s.clock.Now()

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := loan.Return(now); err != nil {
		return nil, err
	}

	copy, err := s.copyRepo.FindByID(ctx, loan.CopyID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.hasOpenLostOrDamagedPenalty(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !blocked {
		if err := copy.SetStatus(catalog.CopyStatusAvailable, now); err != nil {
			return nil, err
		}
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, loan)
	s.audit(ctx, actorID, "LOAN_RETURNED",
		fmt.Sprintf("Copy %s returned for loan %s", copy.CopyNumber, loan.ID))

	resp := ToLoanResponse(loan)
	return &resp, nil
}

// Renew extends a loan by the fixed renewal period. Borrowers with three or
// more lost or damaged loans on record forfeit renewal.
func (s *LoanService) Renew(ctx context.Context, actorID, loanID uuid.UUID) (*LoanResponse, error) {
	now := s.clock.Now()

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	strikes, err := s.loanRepo.CountLostOrDamagedByBorrower(ctx, loan.BorrowerID)
	if err != nil {
		return nil, err
	}
	if !lending.CanRenew(int(strikes)) {
		return nil, shared.NewDomainError(shared.CodePolicyViolation,
			"Renewal refused: borrower has too many lost or damaged loans on record")
	}

	if err := loan.Renew(now); err != nil {
		return nil, err
	}

	copy, err := s.copyRepo.FindByID(ctx, loan.CopyID)
	if err != nil {
		return nil, err
	}
	if err := copy.SetStatus(catalog.CopyStatusBorrowed, now); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, loan)
	s.audit(ctx, actorID, "LOAN_RENEWED",
		fmt.Sprintf("Loan %s renewed, new due date %s", loan.ID, loan.DueDate.Format("2006-01-02")))

	resp := ToLoanResponse(loan)
	return &resp, nil
}

// MarkLost records the copy as lost and levies a replacement fine. The fine
// comes from the request when supplied, otherwise from the market price
// resolver; if neither yields an amount the operation fails and the staff
// member must enter the fine manually.
func (s *LoanService) MarkLost(ctx context.Context, actorID, loanID uuid.UUID, req MarkLostRequest) (*LoanResponse, error) {
	now := s.clock.Now()

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	fine, err := s.resolveLostFine(ctx, loan, req.PenaltyAmount)
	if err != nil {
		return nil, err
	}

	if err := loan.MarkLost(now); err != nil {
		return nil, err
	}

	copy, err := s.copyRepo.FindByID(ctx, loan.CopyID)
	if err != nil {
		return nil, err
	}
	if err := copy.SetStatus(catalog.CopyStatusLost, now); err != nil {
		return nil, err
	}

	if err := s.upsertPenalty(ctx, loanID, lending.PenaltyReasonLost, fine, now); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, loan)
	s.audit(ctx, actorID, "LOAN_MARKED_LOST",
		fmt.Sprintf("Copy %s marked lost, fine %s", copy.CopyNumber, fine))

	resp := ToLoanResponse(loan)
	return &resp, nil
}

// MarkDamaged records the copy as damaged and levies the flat damage fine
func (s *LoanService) MarkDamaged(ctx context.Context, actorID, loanID uuid.UUID) (*LoanResponse, error) {
	now := s.clock.Now()

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := loan.MarkDamaged(now); err != nil {
		return nil, err
	}

	copy, err := s.copyRepo.FindByID(ctx, loan.CopyID)
	if err != nil {
		return nil, err
	}
	if err := copy.SetStatus(catalog.CopyStatusDamaged, now); err != nil {
		return nil, err
	}

	fine := lending.DamageFine()
	if err := s.upsertPenalty(ctx, loanID, lending.PenaltyReasonDamaged, fine, now); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.copyRepo.Save(ctx, copy); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, loan)
	s.audit(ctx, actorID, "LOAN_MARKED_DAMAGED",
		fmt.Sprintf("Copy %s marked damaged, fine %s", copy.CopyNumber, fine))

	resp := ToLoanResponse(loan)
	return &resp, nil
}

// SettlePayment marks every penalty on the loan as paid and records the
// receipt. The loan completes and the copy returns to the shelf only when
// no lost or damaged penalty is involved.
func (s *LoanService) SettlePayment(ctx context.Context, actorID, loanID uuid.UUID, req SettlePaymentRequest) (*PaymentResponse, error) {
	now := s.clock.Now()

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	penalties, err := s.penaltyRepo.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if len(penalties) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "The loan has no penalties to settle")
	}

	hasTerminalPenalty := false
	for _, p := range penalties {
		if p.Reason == lending.PenaltyReasonLost || p.Reason == lending.PenaltyReasonDamaged {
			hasTerminalPenalty = true
		}
		p.MarkPaid(now)
		if err := s.penaltyRepo.Save(ctx, p); err != nil {
			return nil, err
		}
	}

	payment, err := lending.NewPayment(loanID, loan.BorrowerID, valueobject.NewMoneyPHP(req.Amount), req.ORNumber, now)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if !hasTerminalPenalty {
		loan.Settle(now)
		copy, err := s.copyRepo.FindByID(ctx, loan.CopyID)
		if err != nil {
			return nil, err
		}
		if err := copy.SetStatus(catalog.CopyStatusAvailable, now); err != nil {
			return nil, err
		}
		if err := s.loanRepo.Save(ctx, loan); err != nil {
			return nil, err
		}
		if err := s.copyRepo.Save(ctx, copy); err != nil {
			return nil, err
		}
	}

	if s.eventPublisher != nil {
		event := lending.NewPenaltySettledEvent(loan, req.ORNumber)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish settlement event",
				zap.String("loan_id", loan.ID.String()), zap.Error(err))
		}
	}
	s.audit(ctx, actorID, "PENALTY_SETTLED",
		fmt.Sprintf("Penalties for loan %s settled, OR %s, amount %s", loan.ID, req.ORNumber, req.Amount))

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// GetByID retrieves a loan by ID
func (s *LoanService) GetByID(ctx context.Context, loanID uuid.UUID) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	resp := ToLoanResponse(loan)
	return &resp, nil
}

// ListByBorrower retrieves all loans of a borrower
func (s *LoanService) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]LoanResponse, error) {
	loans, err := s.loanRepo.FindByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	responses := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, ToLoanResponse(loan))
	}
	return responses, nil
}

// ListPenalties retrieves the penalties of a loan
func (s *LoanService) ListPenalties(ctx context.Context, loanID uuid.UUID) ([]PenaltyResponse, error) {
	penalties, err := s.penaltyRepo.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	responses := make([]PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		responses = append(responses, ToPenaltyResponse(p))
	}
	return responses, nil
}

// ListUnpaidPenaltiesByBorrower retrieves a borrower's outstanding penalties
// across all loans
func (s *LoanService) ListUnpaidPenaltiesByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]PenaltyResponse, error) {
	penalties, err := s.penaltyRepo.FindUnpaidByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	responses := make([]PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		responses = append(responses, ToPenaltyResponse(p))
	}
	return responses, nil
}

// List retrieves loans with pagination
func (s *LoanService) List(ctx context.Context, offset, limit int) ([]LoanResponse, int64, error) {
	loans, total, err := s.loanRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, ToLoanResponse(loan))
	}
	return responses, total, nil
}

func (s *LoanService) resolveLostFine(ctx context.Context, loan *lending.Loan, manual *decimal.Decimal) (valueobject.Money, error) {
	if manual != nil {
		fine := valueobject.NewMoneyPHP(*manual)
		if !fine.IsPositive() {
			return valueobject.ZeroPHP(), shared.NewDomainError(shared.CodeInvalidInput, "Penalty amount must be positive")
		}
		return fine, nil
	}
	if s.priceResolver != nil {
		book, err := s.bookRepo.FindByID(ctx, loan.BookID)
		if err != nil {
			return valueobject.ZeroPHP(), err
		}
		price, err := s.priceResolver.ResolveLostFine(ctx, book.ISBN)
		if err != nil {
			s.logger.Warn("Market price lookup failed",
				zap.String("isbn", book.ISBN), zap.Error(err))
		} else if price != nil {
			return price.Round2(), nil
		}
	}
	return valueobject.ZeroPHP(), shared.NewDomainError(shared.CodeInvalidInput,
		"Replacement price could not be resolved; a manual penalty amount is required")
}

func (s *LoanService) hasOpenLostOrDamagedPenalty(ctx context.Context, loanID uuid.UUID) (bool, error) {
	penalties, err := s.penaltyRepo.FindByLoan(ctx, loanID)
	if err != nil {
		return false, err
	}
	for _, p := range penalties {
		if p.IsPaid {
			continue
		}
		if p.Reason == lending.PenaltyReasonLost || p.Reason == lending.PenaltyReasonDamaged {
			return true, nil
		}
	}
	return false, nil
}

func (s *LoanService) upsertPenalty(ctx context.Context, loanID uuid.UUID, reason lending.PenaltyReason, amount valueobject.Money, now time.Time) error {
	penalty, err := s.penaltyRepo.FindByLoanAndReason(ctx, loanID, reason)
	switch {
	case err == nil:
		penalty.Reassess(amount, now)
	case shared.IsNotFound(err):
		penalty, err = lending.NewPenalty(loanID, reason, amount, now)
		if err != nil {
			return err
		}
	default:
		return err
	}
	return s.penaltyRepo.Save(ctx, penalty)
}

func (s *LoanService) publishEvents(ctx context.Context, loan *lending.Loan) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range loan.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("loan_id", loan.ID.String()),
				zap.Error(err),
			)
		}
	}
	loan.ClearDomainEvents()
}

func (s *LoanService) audit(ctx context.Context, actorID uuid.UUID, action, details string) {
	entry, err := audit.NewEntry(actorID, action, details, s.clock.Now())
	if err != nil {
		s.logger.Warn("Failed to build audit entry", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.auditRepo.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.String("action", action), zap.Error(err))
	}
}
