package acquisition

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
)

// RequestAcquisitionRequest opens a purchase request
type RequestAcquisitionRequest struct {
	VendorID   uuid.UUID       `json:"vendor_id" binding:"required"`
	BookTitle  string          `json:"book_title" binding:"required"`
	ISBN       string          `json:"isbn"`
	AuthorName string          `json:"author_name"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
}

// RejectAcquisitionRequest closes a purchase request with a reason
type RejectAcquisitionRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// CatalogueAcquisitionRequest shelves a checked delivery and settles the vendor
type CatalogueAcquisitionRequest struct {
	PublisherName   string          `json:"publisher_name"`
	GenreName       string          `json:"genre_name"`
	PublicationYear int             `json:"publication_year"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	PaymentRefNo    string          `json:"payment_ref_no" binding:"required"`
	PaymentAmount   decimal.Decimal `json:"payment_amount" binding:"required"`
}

// RegisterVendorRequest registers a book supplier
type RegisterVendorRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// AcquisitionResponse is the read model for a purchase request
type AcquisitionResponse struct {
	ID           uuid.UUID       `json:"id"`
	ReferenceNo  string          `json:"reference_no"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	BookTitle    string          `json:"book_title"`
	ISBN         string          `json:"isbn"`
	AuthorName   string          `json:"author_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Status       string          `json:"status"`
	RequestedBy  uuid.UUID       `json:"requested_by"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	CataloguedAt *time.Time      `json:"catalogued_at,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToAcquisitionResponse maps an acquisition to its read model
func ToAcquisitionResponse(acq *acquisition.Acquisition) AcquisitionResponse {
	return AcquisitionResponse{
		ID:           acq.ID,
		ReferenceNo:  acq.ReferenceNo,
		VendorID:     acq.VendorID,
		BookTitle:    acq.BookTitle,
		ISBN:         acq.ISBN,
		AuthorName:   acq.AuthorName,
		Quantity:     acq.Quantity,
		UnitPrice:    acq.UnitPrice,
		TotalCost:    acq.TotalCost().Amount(),
		Status:       acq.Status.String(),
		RequestedBy:  acq.RequestedBy,
		DeliveredAt:  acq.DeliveredAt,
		CataloguedAt: acq.CataloguedAt,
		Remarks:      acq.Remarks,
		CreatedAt:    acq.CreatedAt,
	}
}

// VendorResponse is the read model for a supplier
type VendorResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToVendorResponse maps a vendor to its read model
func ToVendorResponse(vendor *acquisition.Vendor) VendorResponse {
	return VendorResponse{
		ID:            vendor.ID,
		Name:          vendor.Name,
		ContactPerson: vendor.ContactPerson,
		Email:         vendor.Email,
		Phone:         vendor.Phone,
		Address:       vendor.Address,
		Active:        vendor.Active,
		CreatedAt:     vendor.CreatedAt,
	}
}

// VendorPaymentResponse is the read model for a disbursement
type VendorPaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	AcquisitionID uuid.UUID       `json:"acquisition_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	ReferenceNo   string          `json:"reference_no"`
	PaidAt        time.Time       `json:"paid_at"`
}

// ToVendorPaymentResponse maps a disbursement to its read model
func ToVendorPaymentResponse(payment *acquisition.VendorPayment) VendorPaymentResponse {
	return VendorPaymentResponse{
		ID:            payment.ID,
		AcquisitionID: payment.AcquisitionID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		ReferenceNo:   payment.ReferenceNo,
		PaidAt:        payment.PaidAt,
	}
}

// CataloguedCopiesResponse reports the outcome of shelving a delivery
type CataloguedCopiesResponse struct {
	Acquisition AcquisitionResponse   `json:"acquisition"`
	BookID      uuid.UUID             `json:"book_id"`
	CopyNumbers []string              `json:"copy_numbers"`
	Payment     VendorPaymentResponse `json:"payment"`
}
