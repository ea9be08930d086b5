package acquisition

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// AcquisitionStatus represents the status of an acquisition request
type AcquisitionStatus string

const (
	AcquisitionStatusRequested  AcquisitionStatus = "REQUESTED"
	AcquisitionStatusApproved   AcquisitionStatus = "APPROVED"
	AcquisitionStatusRejected   AcquisitionStatus = "REJECTED"
	AcquisitionStatusDelivered  AcquisitionStatus = "DELIVERED"
	AcquisitionStatusChecked    AcquisitionStatus = "CHECKED"
	AcquisitionStatusCatalogued AcquisitionStatus = "CATALOGUED"
)

// IsValid checks if the status is a valid AcquisitionStatus
func (s AcquisitionStatus) IsValid() bool {
	switch s {
	case AcquisitionStatusRequested, AcquisitionStatusApproved, AcquisitionStatusRejected,
		AcquisitionStatusDelivered, AcquisitionStatusChecked, AcquisitionStatusCatalogued:
		return true
	}
	return false
}

// String returns the string representation of AcquisitionStatus
func (s AcquisitionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s AcquisitionStatus) CanTransitionTo(target AcquisitionStatus) bool {
	switch s {
	case AcquisitionStatusRequested:
		return target == AcquisitionStatusApproved || target == AcquisitionStatusRejected
	case AcquisitionStatusApproved:
		return target == AcquisitionStatusDelivered
	case AcquisitionStatusDelivered:
		return target == AcquisitionStatusChecked
	case AcquisitionStatusChecked:
		return target == AcquisitionStatusCatalogued
	case AcquisitionStatusRejected, AcquisitionStatusCatalogued:
		return false
	}
	return false
}

// Acquisition is a vendor purchase request that, once fulfilled, feeds new
// copies into the catalog.
type Acquisition struct {
	shared.BaseAggregateRoot
	ReferenceNo  string
	VendorID     uuid.UUID
	BookTitle    string
	ISBN         string
	AuthorName   string
	Quantity     int
	UnitPrice    decimal.Decimal
	Status       AcquisitionStatus
	RequestedBy  uuid.UUID
	DeliveredAt  *time.Time
	CataloguedAt *time.Time
	Remarks      string
}

// NewAcquisition opens a purchase request in REQUESTED status
func NewAcquisition(referenceNo string, vendorID, requestedBy uuid.UUID, bookTitle, isbn, authorName string, quantity int, unitPrice valueobject.Money) (*Acquisition, error) {
	if referenceNo == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Reference number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Vendor ID cannot be empty")
	}
	if bookTitle == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Book title cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}

	acq := &Acquisition{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferenceNo:       referenceNo,
		VendorID:          vendorID,
		BookTitle:         bookTitle,
		ISBN:              isbn,
		AuthorName:        authorName,
		Quantity:          quantity,
		UnitPrice:         unitPrice.Amount().Round(2),
		Status:            AcquisitionStatusRequested,
		RequestedBy:       requestedBy,
	}
	acq.AddDomainEvent(NewAcquisitionRequestedEvent(acq))
	return acq, nil
}

func (a *Acquisition) transition(target AcquisitionStatus, now time.Time) error {
	if !a.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot transition acquisition from %s to %s", a.Status, target))
	}
	a.Status = target
	a.UpdatedAt = now
	return nil
}

// Approve moves the request forward for ordering
func (a *Acquisition) Approve(now time.Time) error {
	if err := a.transition(AcquisitionStatusApproved, now); err != nil {
		return err
	}
	a.AddDomainEvent(NewAcquisitionApprovedEvent(a))
	return nil
}

// Reject closes the request. Terminal.
func (a *Acquisition) Reject(remarks string, now time.Time) error {
	if err := a.transition(AcquisitionStatusRejected, now); err != nil {
		return err
	}
	a.Remarks = remarks
	return nil
}

// MarkDelivered records receipt of the vendor shipment
func (a *Acquisition) MarkDelivered(now time.Time) error {
	if err := a.transition(AcquisitionStatusDelivered, now); err != nil {
		return err
	}
	a.DeliveredAt = &now
	return nil
}

// MarkChecked records that the delivered items passed inspection
func (a *Acquisition) MarkChecked(now time.Time) error {
	return a.transition(AcquisitionStatusChecked, now)
}

// MarkCatalogued closes the workflow once every copy has been shelved. Terminal.
func (a *Acquisition) MarkCatalogued(now time.Time) error {
	if err := a.transition(AcquisitionStatusCatalogued, now); err != nil {
		return err
	}
	a.CataloguedAt = &now
	a.AddDomainEvent(NewAcquisitionCataloguedEvent(a))
	return nil
}

// TotalCost returns quantity times unit price
func (a *Acquisition) TotalCost() valueobject.Money {
	return valueobject.NewMoneyPHP(a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))))
}

// CopyNumber derives the catalog copy number for the nth copy of this
// acquisition, e.g. "ACQ000042-C001".
func (a *Acquisition) CopyNumber(sequence int, ordinal int) string {
	return fmt.Sprintf("ACQ%06d-C%03d", sequence, ordinal)
}
