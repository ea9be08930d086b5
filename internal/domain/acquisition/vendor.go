package acquisition

import (
	"strings"
	"time"

	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Vendor is a book supplier
type Vendor struct {
	shared.BaseAggregateRoot
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Active        bool
}

// NewVendor registers a supplier
func NewVendor(name, contactPerson, email, phone, address string) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Vendor name cannot be empty")
	}
	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactPerson:     contactPerson,
		Email:             email,
		Phone:             phone,
		Address:           address,
		Active:            true,
	}, nil
}

// Deactivate retires the vendor from new acquisitions
func (v *Vendor) Deactivate(now time.Time) {
	v.Active = false
	v.UpdatedAt = now
}
