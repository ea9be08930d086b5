package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

func seedPenalty(t *testing.T, repo *GormPenaltyRepository, loanID uuid.UUID, reason lending.PenaltyReason, amount int64, paid bool) *lending.Penalty {
	t.Helper()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	penalty, err := lending.NewPenalty(loanID, reason, valueobject.NewMoneyPHPFromInt(amount), now)
	require.NoError(t, err)
	if paid {
		penalty.MarkPaid(now)
	}
	require.NoError(t, repo.Save(context.Background(), penalty))
	return penalty
}

func TestGormPenaltyRepository_FindByLoanAndReason(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPenaltyRepository(db)
	ctx := context.Background()
	loanID := uuid.New()

	seedPenalty(t, repo, loanID, lending.PenaltyReasonOverdue, 100, false)

	t.Run("finds the penalty for a reason", func(t *testing.T) {
		penalty, err := repo.FindByLoanAndReason(ctx, loanID, lending.PenaltyReasonOverdue)
		require.NoError(t, err)
		assert.Equal(t, "100.00", penalty.Amount.StringFixed(2))
		assert.False(t, penalty.IsPaid)
	})

	t.Run("returns not found for a missing reason", func(t *testing.T) {
		_, err := repo.FindByLoanAndReason(ctx, loanID, lending.PenaltyReasonLost)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormPenaltyRepository_SaveReassessesInPlace(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPenaltyRepository(db)
	ctx := context.Background()
	loanID := uuid.New()
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)

	penalty := seedPenalty(t, repo, loanID, lending.PenaltyReasonOverdue, 50, false)
	penalty.Reassess(valueobject.NewMoneyPHPFromInt(125), now)
	require.NoError(t, repo.Save(ctx, penalty))

	loaded, err := repo.FindByLoanAndReason(ctx, loanID, lending.PenaltyReasonOverdue)
	require.NoError(t, err)
	assert.Equal(t, penalty.ID, loaded.ID)
	assert.Equal(t, "125.00", loaded.Amount.StringFixed(2))

	all, err := repo.FindByLoan(ctx, loanID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGormPenaltyRepository_FindUnpaidByBorrower(t *testing.T) {
	db := newTestDB(t)
	penaltyRepo := NewGormPenaltyRepository(db)
	loanRepo := NewGormLoanRepository(db)
	ctx := context.Background()
	borrowerID := uuid.New()
	due := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	loan := seedLoan(t, loanRepo, borrowerID, due, lending.LoanStatusOverdue, nil)
	otherLoan := seedLoan(t, loanRepo, uuid.New(), due, lending.LoanStatusOverdue, nil)

	unpaid := seedPenalty(t, penaltyRepo, loan.ID, lending.PenaltyReasonOverdue, 75, false)
	seedPenalty(t, penaltyRepo, loan.ID, lending.PenaltyReasonDamaged, 300, true)
	seedPenalty(t, penaltyRepo, otherLoan.ID, lending.PenaltyReasonOverdue, 25, false)

	penalties, err := penaltyRepo.FindUnpaidByBorrower(ctx, borrowerID)

	require.NoError(t, err)
	require.Len(t, penalties, 1)
	assert.Equal(t, unpaid.ID, penalties[0].ID)
}

func TestGormPenaltyRepository_SumUnpaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPenaltyRepository(db)
	ctx := context.Background()

	t.Run("empty table sums to zero", func(t *testing.T) {
		total, err := repo.SumUnpaid(ctx)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("sums only unpaid penalties", func(t *testing.T) {
		seedPenalty(t, repo, uuid.New(), lending.PenaltyReasonOverdue, 100, false)
		seedPenalty(t, repo, uuid.New(), lending.PenaltyReasonDamaged, 300, false)
		seedPenalty(t, repo, uuid.New(), lending.PenaltyReasonLost, 950, true)

		total, err := repo.SumUnpaid(ctx)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(400)), "got %s", total)
	})
}
