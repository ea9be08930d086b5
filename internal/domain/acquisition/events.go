package acquisition

import (
	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Event type constants for the acquisition context
const (
	EventTypeAcquisitionRequested  = "acquisition.requested"
	EventTypeAcquisitionApproved   = "acquisition.approved"
	EventTypeAcquisitionCatalogued = "acquisition.catalogued"
)

// AcquisitionRequestedEvent is raised when a purchase request is opened
type AcquisitionRequestedEvent struct {
	shared.BaseDomainEvent
	ReferenceNo string    `json:"reference_no"`
	VendorID    uuid.UUID `json:"vendor_id"`
	BookTitle   string    `json:"book_title"`
	Quantity    int       `json:"quantity"`
}

// NewAcquisitionRequestedEvent creates an AcquisitionRequestedEvent
func NewAcquisitionRequestedEvent(acq *Acquisition) *AcquisitionRequestedEvent {
	return &AcquisitionRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAcquisitionRequested, acq.ID, "Acquisition"),
		ReferenceNo:     acq.ReferenceNo,
		VendorID:        acq.VendorID,
		BookTitle:       acq.BookTitle,
		Quantity:        acq.Quantity,
	}
}

// AcquisitionApprovedEvent is raised when a purchase request is approved
type AcquisitionApprovedEvent struct {
	shared.BaseDomainEvent
	ReferenceNo string    `json:"reference_no"`
	VendorID    uuid.UUID `json:"vendor_id"`
}

// NewAcquisitionApprovedEvent creates an AcquisitionApprovedEvent
func NewAcquisitionApprovedEvent(acq *Acquisition) *AcquisitionApprovedEvent {
	return &AcquisitionApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAcquisitionApproved, acq.ID, "Acquisition"),
		ReferenceNo:     acq.ReferenceNo,
		VendorID:        acq.VendorID,
	}
}

// AcquisitionCataloguedEvent is raised when every delivered copy is shelved
type AcquisitionCataloguedEvent struct {
	shared.BaseDomainEvent
	ReferenceNo string `json:"reference_no"`
	Quantity    int    `json:"quantity"`
}

// NewAcquisitionCataloguedEvent creates an AcquisitionCataloguedEvent
func NewAcquisitionCataloguedEvent(acq *Acquisition) *AcquisitionCataloguedEvent {
	return &AcquisitionCataloguedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAcquisitionCatalogued, acq.ID, "Acquisition"),
		ReferenceNo:     acq.ReferenceNo,
		Quantity:        acq.Quantity,
	}
}
