package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/audit"
)

// EntryResponse is the read model for an audit trail entry
type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// ToEntryResponse maps an audit entry to its read model
func ToEntryResponse(entry *audit.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt,
	}
}

// AuditService exposes the read side of the audit trail
type AuditService struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(repo audit.Repository, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// List returns audit entries, newest first
func (s *AuditService) List(ctx context.Context, offset, limit int) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(entries), total, nil
}

// ListByUser returns the audit entries recorded for one actor
func (s *AuditService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(entries), total, nil
}

// ListByAction returns the audit entries for one action type
func (s *AuditService) ListByAction(ctx context.Context, action string, offset, limit int) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.ListByAction(ctx, action, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(entries), total, nil
}

func toResponses(entries []*audit.Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToEntryResponse(entry))
	}
	return responses
}
