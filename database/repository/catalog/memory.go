// File: database/repository/catalog/memory.go
package catalogRepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"clinicbook/models"
)

type memoryCatalogRepo struct {
	mu       sync.RWMutex
	byName   map[string]models.TreatmentOption
	bookings BookingSource
}

// NewMemoryCatalogRepo returns a process-local CatalogRepository. bookings
// backs the store-side availability join.
func NewMemoryCatalogRepo(bookings BookingSource) CatalogRepository {
	return &memoryCatalogRepo{
		byName:   make(map[string]models.TreatmentOption),
		bookings: bookings,
	}
}

func (r *memoryCatalogRepo) sorted() []models.TreatmentOption {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.TreatmentOption, 0, len(r.byName))
	for _, opt := range r.byName {
		opt.Slots = append([]string{}, opt.Slots...)
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *memoryCatalogRepo) ListTreatments(ctx context.Context) ([]models.TreatmentOption, error) {
	return r.sorted(), nil
}

func (r *memoryCatalogRepo) ListTreatmentNames(ctx context.Context) ([]models.TreatmentName, error) {
	opts := r.sorted()
	names := make([]models.TreatmentName, len(opts))
	for i, opt := range opts {
		names[i] = models.TreatmentName{ID: opt.ID, Name: opt.Name}
	}
	return names, nil
}

func (r *memoryCatalogRepo) GetByName(ctx context.Context, name string) (*models.TreatmentOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opt, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	opt.Slots = append([]string{}, opt.Slots...)
	return &opt, nil
}

func (r *memoryCatalogRepo) Upsert(ctx context.Context, option models.TreatmentOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[option.Name]; ok {
		option.ID = existing.ID
	} else if option.ID == "" {
		option.ID = uuid.New().String()
	}
	option.Slots = append([]string{}, option.Slots...)
	r.byName[option.Name] = option
	return nil
}

// RemainingSlots mirrors the Mongo pipeline: per treatment, look up that
// date's bookings for it, project their slots, filter the catalog.
func (r *memoryCatalogRepo) RemainingSlots(ctx context.Context, date string) ([]models.Availability, error) {
	dayBookings, err := r.bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	opts := r.sorted()
	result := make([]models.Availability, 0, len(opts))
	for _, opt := range opts {
		var booked []string
		for _, b := range dayBookings {
			if b.Treatment == opt.Name && b.AppointmentDate == date {
				booked = append(booked, b.Slot)
			}
		}
		remaining := []string{}
		for _, slot := range opt.Slots {
			if !contains(booked, slot) {
				remaining = append(remaining, slot)
			}
		}
		result = append(result, models.Availability{
			TreatmentName:  opt.Name,
			Price:          opt.Price,
			RemainingSlots: remaining,
		})
	}
	return result, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
