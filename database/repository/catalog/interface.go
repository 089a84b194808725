// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"clinicbook/models"
)

// CatalogRepository reads the treatment catalog. Upsert exists for
// administrative seeding only.
type CatalogRepository interface {
	// ListTreatments returns every treatment ordered by name.
	ListTreatments(ctx context.Context) ([]models.TreatmentOption, error)
	// ListTreatmentNames returns the {id, name} projection ordered by name.
	ListTreatmentNames(ctx context.Context) ([]models.TreatmentName, error)
	// GetByName returns nil without error when no treatment has that name.
	GetByName(ctx context.Context, name string) (*models.TreatmentOption, error)
	Upsert(ctx context.Context, option models.TreatmentOption) error
	// RemainingSlots computes availability for date inside the store by
	// joining the catalog against that date's bookings.
	RemainingSlots(ctx context.Context, date string) ([]models.Availability, error)
}

// BookingSource is what the in-memory store needs to join against.
type BookingSource interface {
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
}
