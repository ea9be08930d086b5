package acquisition

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// VendorPayment is an immutable disbursement record against an acquisition
type VendorPayment struct {
	shared.BaseEntity
	AcquisitionID uuid.UUID
	Amount        decimal.Decimal
	Method        string
	ReferenceNo   string
	PaidAt        time.Time
}

// NewVendorPayment records a disbursement to the vendor
func NewVendorPayment(acquisitionID uuid.UUID, amount valueobject.Money, method, referenceNo string, now time.Time) (*VendorPayment, error) {
	if acquisitionID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Acquisition ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment amount must be positive")
	}
	if referenceNo == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment reference cannot be empty")
	}
	return &VendorPayment{
		BaseEntity:    shared.NewBaseEntityAt(now),
		AcquisitionID: acquisitionID,
		Amount:        amount.Amount().Round(2),
		Method:        method,
		ReferenceNo:   referenceNo,
		PaidAt:        now,
	}, nil
}

// GetAmount returns the disbursement amount as money
func (p *VendorPayment) GetAmount() valueobject.Money {
	return valueobject.NewMoneyPHP(p.Amount)
}
