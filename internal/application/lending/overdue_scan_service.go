package lending

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// OverdueScanService runs the level-triggered overdue sweep: it promotes
// stale active loans to overdue and recomputes the derived day counter and
// fine from the elapsed days on every pass. Because amounts are overwritten
// rather than incremented, the sweep is safe to run at any frequency.
type OverdueScanService struct {
	loanRepo    lending.LoanRepository
	overdueRepo lending.OverdueRepository
	penaltyRepo lending.PenaltyRepository
	copyRepo    catalog.CopyRepository
	eventBus    shared.EventBus
	clock       shared.Clock
	logger      *zap.Logger
}

// NewOverdueScanService creates a new OverdueScanService
func NewOverdueScanService(
	loanRepo lending.LoanRepository,
	overdueRepo lending.OverdueRepository,
	penaltyRepo lending.PenaltyRepository,
	copyRepo catalog.CopyRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *OverdueScanService {
	return &OverdueScanService{
		loanRepo:    loanRepo,
		overdueRepo: overdueRepo,
		penaltyRepo: penaltyRepo,
		copyRepo:    copyRepo,
		clock:       clock,
		logger:      logger,
	}
}

// SetEventBus sets the event bus for publishing events
func (s *OverdueScanService) SetEventBus(eventBus shared.EventBus) {
	s.eventBus = eventBus
}

// ScanStats contains statistics about one sweep
type ScanStats struct {
	TotalOverdue int       `json:"total_overdue"`
	Processed    int       `json:"processed"`
	Failed       int       `json:"failed"`
	ScannedAt    time.Time `json:"scanned_at"`
}

// Scan runs one sweep. A failure processing one loan is isolated and logged;
// the remaining loans are still processed.
func (s *OverdueScanService) Scan(ctx context.Context) (*ScanStats, error) {
	now := s.clock.Now()
	stats := &ScanStats{ScannedAt: now}

	loans, err := s.loanRepo.FindDueForScan(ctx, now)
	if err != nil {
		s.logger.Error("Failed to query loans due for scan", zap.Error(err))
		return nil, err
	}

	stats.TotalOverdue = len(loans)
	if stats.TotalOverdue == 0 {
		s.logger.Debug("No overdue loans found")
		return stats, nil
	}

	s.logger.Info("Found overdue loans", zap.Int("count", stats.TotalOverdue))

	for _, loan := range loans {
		if err := s.processOverdueLoan(ctx, loan, now); err != nil {
			s.logger.Error("Failed to process overdue loan",
				zap.String("loan_id", loan.ID.String()),
				zap.String("borrower_id", loan.BorrowerID.String()),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	s.logger.Info("Completed overdue sweep",
		zap.Int("total", stats.TotalOverdue),
		zap.Int("processed", stats.Processed),
		zap.Int("failed", stats.Failed),
	)

	return stats, nil
}

// processOverdueLoan reconciles a single loan: status promotion, copy status
// mirror, day counter upsert, and fine recomputation.
func (s *OverdueScanService) processOverdueLoan(ctx context.Context, loan *lending.Loan, now time.Time) error {
	firstDetection := loan.Status != lending.LoanStatusOverdue

	if err := loan.MarkOverdue(now); err != nil {
		return err
	}
	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return err
	}

	copy, err := s.copyRepo.FindByID(ctx, loan.CopyID)
	if err != nil {
		return err
	}
	if copy.Status != catalog.CopyStatusOverdue {
		if err := copy.SetStatus(catalog.CopyStatusOverdue, now); err != nil {
			return err
		}
		if err := s.copyRepo.Save(ctx, copy); err != nil {
			return err
		}
	}

	days := lending.OverdueDays(now, loan.DueDate)

	if err := s.upsertOverdue(ctx, loan, days, now); err != nil {
		return err
	}
	if err := s.upsertOverduePenalty(ctx, loan, days, now); err != nil {
		return err
	}

	if firstDetection && s.eventBus != nil {
		for _, event := range loan.GetDomainEvents() {
			if err := s.eventBus.Publish(ctx, event); err != nil {
				s.logger.Warn("Failed to publish overdue event",
					zap.String("loan_id", loan.ID.String()), zap.Error(err))
			}
		}
	}
	loan.ClearDomainEvents()

	return nil
}

func (s *OverdueScanService) upsertOverdue(ctx context.Context, loan *lending.Loan, days int, now time.Time) error {
	record, err := s.overdueRepo.FindByLoan(ctx, loan.ID)
	switch {
	case err == nil:
		record.Refresh(days, now)
	case shared.IsNotFound(err):
		record, err = lending.NewOverdue(loan.ID, days, now)
		if err != nil {
			return err
		}
	default:
		return err
	}
	return s.overdueRepo.Save(ctx, record)
}

func (s *OverdueScanService) upsertOverduePenalty(ctx context.Context, loan *lending.Loan, days int, now time.Time) error {
	fine := lending.OverdueFine(days)
	penalty, err := s.penaltyRepo.FindByLoanAndReason(ctx, loan.ID, lending.PenaltyReasonOverdue)
	switch {
	case err == nil:
		penalty.Reassess(fine, now)
	case shared.IsNotFound(err):
		penalty, err = lending.NewPenalty(loan.ID, lending.PenaltyReasonOverdue, fine, now)
		if err != nil {
			return err
		}
	default:
		return err
	}
	return s.penaltyRepo.Save(ctx, penalty)
}
