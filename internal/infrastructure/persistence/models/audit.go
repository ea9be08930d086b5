package models

import (
	"github.com/google/uuid"

	"github.com/shelfmaster/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for audit trail entries
type AuditLogModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Action  string    `gorm:"type:varchar(50);not null;index"`
	Details string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain audit Entry
func (m *AuditLogModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Action:     m.Action,
		Details:    m.Details,
	}
}

// AuditLogModelFromDomain creates a persistence model from a domain audit Entry
func AuditLogModelFromDomain(e *audit.Entry) *AuditLogModel {
	m := &AuditLogModel{
		UserID:  e.UserID,
		Action:  e.Action,
		Details: e.Details,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
