package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

func seedAcquisition(t *testing.T, repo *GormAcquisitionRepository, referenceNo string) *acquisition.Acquisition {
	t.Helper()
	acq, err := acquisition.NewAcquisition(
		referenceNo, uuid.New(), uuid.New(),
		"El Filibusterismo", "978-971-23-9999-1", "Jose Rizal",
		2, valueobject.NewMoneyPHP(decimal.NewFromInt(380)),
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), acq))
	return acq
}

func TestGormAcquisitionRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAcquisitionRepository(db)
	ctx := context.Background()

	acq := seedAcquisition(t, repo, "ACQ000007")

	found, err := repo.FindByReferenceNo(ctx, "ACQ000007")
	require.NoError(t, err)
	assert.Equal(t, acq.ID, found.ID)
	assert.Equal(t, acquisition.AcquisitionStatusRequested, found.Status)
	assert.Equal(t, "380.00", found.UnitPrice.StringFixed(2))
}

func TestGormAcquisitionRepository_NextSequence(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAcquisitionRepository(db)
	ctx := context.Background()

	t.Run("starts at one on an empty table", func(t *testing.T) {
		next, err := repo.NextSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, next)
	})

	t.Run("continues from the highest reference", func(t *testing.T) {
		seedAcquisition(t, repo, "ACQ000007")
		seedAcquisition(t, repo, "ACQ000041")

		next, err := repo.NextSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, next)
	})
}
