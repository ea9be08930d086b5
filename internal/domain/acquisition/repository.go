package acquisition

import (
	"context"

	"github.com/google/uuid"
)

// AcquisitionRepository defines the persistence interface for acquisitions
type AcquisitionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Acquisition, error)
	FindByReferenceNo(ctx context.Context, referenceNo string) (*Acquisition, error)
	List(ctx context.Context, offset, limit int) ([]*Acquisition, int64, error)
	ListByStatus(ctx context.Context, status AcquisitionStatus, offset, limit int) ([]*Acquisition, int64, error)
	NextSequence(ctx context.Context) (int, error)
	Save(ctx context.Context, acq *Acquisition) error
}

// VendorRepository defines the persistence interface for vendors
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByName(ctx context.Context, name string) (*Vendor, error)
	List(ctx context.Context, offset, limit int) ([]*Vendor, int64, error)
	Save(ctx context.Context, vendor *Vendor) error
}

// VendorPaymentRepository defines the persistence interface for disbursements
type VendorPaymentRepository interface {
	FindByAcquisition(ctx context.Context, acquisitionID uuid.UUID) ([]*VendorPayment, error)
	Save(ctx context.Context, payment *VendorPayment) error
}
