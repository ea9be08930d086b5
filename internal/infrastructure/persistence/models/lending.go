package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmaster/backend/internal/domain/lending"
)

// LoanModel is the persistence model for the Loan aggregate
type LoanModel struct {
	AggregateModel
	BorrowerID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	CopyID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	BookID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	TransactionDate time.Time          `gorm:"not null"`
	DueDate         time.Time          `gorm:"not null;index"`
	ReturnDate      *time.Time         `gorm:"index"`
	Status          lending.LoanStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (LoanModel) TableName() string {
	return "loans"
}

// ToDomain converts the persistence model to a domain Loan
func (m *LoanModel) ToDomain() *lending.Loan {
	return &lending.Loan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BorrowerID:        m.BorrowerID,
		CopyID:            m.CopyID,
		BookID:            m.BookID,
		TransactionDate:   m.TransactionDate,
		DueDate:           m.DueDate,
		ReturnDate:        m.ReturnDate,
		Status:            m.Status,
	}
}

// LoanModelFromDomain creates a persistence model from a domain Loan
func LoanModelFromDomain(l *lending.Loan) *LoanModel {
	m := &LoanModel{
		BorrowerID:      l.BorrowerID,
		CopyID:          l.CopyID,
		BookID:          l.BookID,
		TransactionDate: l.TransactionDate,
		DueDate:         l.DueDate,
		ReturnDate:      l.ReturnDate,
		Status:          l.Status,
	}
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	return m
}

// OverdueModel is the persistence model for the per-loan overdue counter.
// There is at most one row per loan.
type OverdueModel struct {
	BaseModel
	LoanID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OverdueDays int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OverdueModel) TableName() string {
	return "overdues"
}

// ToDomain converts the persistence model to a domain Overdue
func (m *OverdueModel) ToDomain() *lending.Overdue {
	return &lending.Overdue{
		BaseEntity:  m.BaseModel.ToDomain(),
		LoanID:      m.LoanID,
		OverdueDays: m.OverdueDays,
	}
}

// OverdueModelFromDomain creates a persistence model from a domain Overdue
func OverdueModelFromDomain(o *lending.Overdue) *OverdueModel {
	m := &OverdueModel{
		LoanID:      o.LoanID,
		OverdueDays: o.OverdueDays,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// PenaltyModel is the persistence model for penalties. A loan carries at
// most one penalty per reason.
type PenaltyModel struct {
	BaseModel
	LoanID uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_penalty_loan_reason"`
	Reason lending.PenaltyReason `gorm:"type:varchar(20);not null;uniqueIndex:idx_penalty_loan_reason"`
	Amount decimal.Decimal       `gorm:"type:numeric(12,2);not null"`
	IsPaid bool                  `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (PenaltyModel) TableName() string {
	return "penalties"
}

// ToDomain converts the persistence model to a domain Penalty
func (m *PenaltyModel) ToDomain() *lending.Penalty {
	return &lending.Penalty{
		BaseEntity: m.BaseModel.ToDomain(),
		LoanID:     m.LoanID,
		Reason:     m.Reason,
		Amount:     m.Amount,
		IsPaid:     m.IsPaid,
	}
}

// PenaltyModelFromDomain creates a persistence model from a domain Penalty
func PenaltyModelFromDomain(p *lending.Penalty) *PenaltyModel {
	m := &PenaltyModel{
		LoanID: p.LoanID,
		Reason: p.Reason,
		Amount: p.Amount,
		IsPaid: p.IsPaid,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// PaymentModel is the persistence model for settlement receipts
type PaymentModel struct {
	BaseModel
	LoanID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BorrowerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ORNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	PaymentDate time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *lending.Payment {
	return &lending.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		LoanID:      m.LoanID,
		BorrowerID:  m.BorrowerID,
		Amount:      m.Amount,
		ORNumber:    m.ORNumber,
		PaymentDate: m.PaymentDate,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *lending.Payment) *PaymentModel {
	m := &PaymentModel{
		LoanID:      p.LoanID,
		BorrowerID:  p.BorrowerID,
		Amount:      p.Amount,
		ORNumber:    p.ORNumber,
		PaymentDate: p.PaymentDate,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
