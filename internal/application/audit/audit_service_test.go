package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/audit"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepository) List(ctx context.Context, offset, limit int) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, offset, limit)
	var entries []*audit.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]*audit.Entry)
	}
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	var entries []*audit.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]*audit.Entry)
	}
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditRepository) ListByAction(ctx context.Context, action string, offset, limit int) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, action, offset, limit)
	var entries []*audit.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]*audit.Entry)
	}
	return entries, args.Get(1).(int64), args.Error(2)
}

func TestAuditService_List(t *testing.T) {
	repo := new(mockAuditRepository)
	svc := NewAuditService(repo, zap.NewNop())

	actorID := uuid.New()
	entry, err := audit.NewEntry(actorID, "LOAN_ISSUED", "Issued copy ACQ000042-C001", time.Now())
	require.NoError(t, err)

	repo.On("List", mock.Anything, 0, 20).Return([]*audit.Entry{entry}, int64(1), nil)

	responses, total, err := svc.List(context.Background(), 0, 20)

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, responses, 1)
	assert.Equal(t, "LOAN_ISSUED", responses[0].Action)
	assert.Equal(t, actorID, responses[0].UserID)
	repo.AssertExpectations(t)
}

func TestAuditService_ListByUser(t *testing.T) {
	repo := new(mockAuditRepository)
	svc := NewAuditService(repo, zap.NewNop())

	actorID := uuid.New()
	repo.On("ListByUser", mock.Anything, actorID, 0, 20).Return(nil, int64(0), nil)

	responses, total, err := svc.ListByUser(context.Background(), actorID, 0, 20)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, responses)
}

func TestAuditService_ListByAction(t *testing.T) {
	repo := new(mockAuditRepository)
	svc := NewAuditService(repo, zap.NewNop())

	entry, err := audit.NewEntry(uuid.New(), "PASSWORD_CHANGED", "", time.Now())
	require.NoError(t, err)
	repo.On("ListByAction", mock.Anything, "PASSWORD_CHANGED", 0, 20).Return([]*audit.Entry{entry}, int64(1), nil)

	responses, total, err := svc.ListByAction(context.Background(), "PASSWORD_CHANGED", 0, 20)

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, responses, 1)
	assert.Equal(t, "PASSWORD_CHANGED", responses[0].Action)
}
