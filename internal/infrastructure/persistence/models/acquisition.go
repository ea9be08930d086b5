package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
)

// AcquisitionModel is the persistence model for the Acquisition aggregate
type AcquisitionModel struct {
	AggregateModel
	ReferenceNo  string                        `gorm:"type:varchar(20);not null;uniqueIndex"`
	VendorID     uuid.UUID                     `gorm:"type:uuid;not null;index"`
	BookTitle    string                        `gorm:"type:varchar(255);not null"`
	ISBN         string                        `gorm:"type:varchar(20);index"`
	AuthorName   string                        `gorm:"type:varchar(200)"`
	Quantity     int                           `gorm:"not null"`
	UnitPrice    decimal.Decimal               `gorm:"type:numeric(12,2);not null"`
	Status       acquisition.AcquisitionStatus `gorm:"type:varchar(20);not null;index"`
	RequestedBy  uuid.UUID                     `gorm:"type:uuid;not null;index"`
	DeliveredAt  *time.Time
	CataloguedAt *time.Time
	Remarks      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AcquisitionModel) TableName() string {
	return "acquisitions"
}

// ToDomain converts the persistence model to a domain Acquisition
func (m *AcquisitionModel) ToDomain() *acquisition.Acquisition {
	return &acquisition.Acquisition{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReferenceNo:       m.ReferenceNo,
		VendorID:          m.VendorID,
		BookTitle:         m.BookTitle,
		ISBN:              m.ISBN,
		AuthorName:        m.AuthorName,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		Status:            m.Status,
		RequestedBy:       m.RequestedBy,
		DeliveredAt:       m.DeliveredAt,
		CataloguedAt:      m.CataloguedAt,
		Remarks:           m.Remarks,
	}
}

// AcquisitionModelFromDomain creates a persistence model from a domain Acquisition
func AcquisitionModelFromDomain(a *acquisition.Acquisition) *AcquisitionModel {
	m := &AcquisitionModel{
		ReferenceNo:  a.ReferenceNo,
		VendorID:     a.VendorID,
		BookTitle:    a.BookTitle,
		ISBN:         a.ISBN,
		AuthorName:   a.AuthorName,
		Quantity:     a.Quantity,
		UnitPrice:    a.UnitPrice,
		Status:       a.Status,
		RequestedBy:  a.RequestedBy,
		DeliveredAt:  a.DeliveredAt,
		CataloguedAt: a.CataloguedAt,
		Remarks:      a.Remarks,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// VendorModel is the persistence model for the Vendor aggregate
type VendorModel struct {
	AggregateModel
	Name          string `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactPerson string `gorm:"type:varchar(200)"`
	Email         string `gorm:"type:varchar(200)"`
	Phone         string `gorm:"type:varchar(50)"`
	Address       string `gorm:"type:varchar(500)"`
	Active        bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor
func (m *VendorModel) ToDomain() *acquisition.Vendor {
	return &acquisition.Vendor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		ContactPerson:     m.ContactPerson,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		Active:            m.Active,
	}
}

// VendorModelFromDomain creates a persistence model from a domain Vendor
func VendorModelFromDomain(v *acquisition.Vendor) *VendorModel {
	m := &VendorModel{
		Name:          v.Name,
		ContactPerson: v.ContactPerson,
		Email:         v.Email,
		Phone:         v.Phone,
		Address:       v.Address,
		Active:        v.Active,
	}
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	return m
}

// VendorPaymentModel is the persistence model for vendor disbursements
type VendorPaymentModel struct {
	BaseModel
	AcquisitionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method        string          `gorm:"type:varchar(50)"`
	ReferenceNo   string          `gorm:"type:varchar(50);not null"`
	PaidAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VendorPaymentModel) TableName() string {
	return "vendor_payments"
}

// ToDomain converts the persistence model to a domain VendorPayment
func (m *VendorPaymentModel) ToDomain() *acquisition.VendorPayment {
	return &acquisition.VendorPayment{
		BaseEntity:    m.BaseModel.ToDomain(),
		AcquisitionID: m.AcquisitionID,
		Amount:        m.Amount,
		Method:        m.Method,
		ReferenceNo:   m.ReferenceNo,
		PaidAt:        m.PaidAt,
	}
}

// VendorPaymentModelFromDomain creates a persistence model from a domain VendorPayment
func VendorPaymentModelFromDomain(p *acquisition.VendorPayment) *VendorPaymentModel {
	m := &VendorPaymentModel{
		AcquisitionID: p.AcquisitionID,
		Amount:        p.Amount,
		Method:        p.Method,
		ReferenceNo:   p.ReferenceNo,
		PaidAt:        p.PaidAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
