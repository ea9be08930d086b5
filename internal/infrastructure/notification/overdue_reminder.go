package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// OverdueReminderHandler emails a borrower when the sweep first marks one of
// their loans overdue. Delivery failures are logged by the event bus and
// never affect the loan ledger.
type OverdueReminderHandler struct {
	sender   EmailSender
	userRepo identity.UserRepository
	copyRepo catalog.CopyRepository
	bookRepo catalog.BookRepository
	logger   *zap.Logger
}

// NewOverdueReminderHandler creates a new overdue reminder handler
func NewOverdueReminderHandler(
	sender EmailSender,
	userRepo identity.UserRepository,
	copyRepo catalog.CopyRepository,
	bookRepo catalog.BookRepository,
	logger *zap.Logger,
) *OverdueReminderHandler {
	return &OverdueReminderHandler{
		sender:   sender,
		userRepo: userRepo,
		copyRepo: copyRepo,
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OverdueReminderHandler) EventTypes() []string {
	return []string{lending.EventTypeLoanOverdue}
}

// Handle sends the reminder email for a loan_overdue event
func (h *OverdueReminderHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	overdue, ok := event.(*lending.LoanOverdueEvent)
	if !ok {
		return nil
	}

	borrower, err := h.userRepo.FindByID(ctx, overdue.BorrowerID)
	if err != nil {
		return fmt.Errorf("look up borrower %s: %w", overdue.BorrowerID, err)
	}
	if borrower.Email == "" {
		h.logger.Warn("borrower has no email, skipping overdue reminder",
			zap.String("borrower_id", overdue.BorrowerID.String()),
		)
		return nil
	}

	title := h.bookTitle(ctx, overdue)

	subject := "Overdue book reminder"
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"Our records show that %q was due on %s and has not been returned.\r\n"+
			"Please return it at your earliest convenience. Overdue fines accrue daily.\r\n\r\n"+
			"Thank you,\r\nThe Library",
		borrower.FullName,
		title,
		overdue.DueDate.Format("January 2, 2006"),
	)

	if err := h.sender.Send(borrower.Email, subject, body); err != nil {
		return err
	}

	h.logger.Info("overdue reminder sent",
		zap.String("loan_id", overdue.AggregateID().String()),
		zap.String("borrower_id", overdue.BorrowerID.String()),
	)
	return nil
}

// bookTitle resolves the borrowed book's title, falling back to a generic
// description when the catalog lookup fails
func (h *OverdueReminderHandler) bookTitle(ctx context.Context, overdue *lending.LoanOverdueEvent) string {
	copy, err := h.copyRepo.FindByID(ctx, overdue.CopyID)
	if err != nil {
		return "a borrowed book"
	}
	book, err := h.bookRepo.FindByID(ctx, copy.BookID)
	if err != nil {
		return "a borrowed book"
	}
	return book.Title
}

var _ shared.EventHandler = (*OverdueReminderHandler)(nil)
