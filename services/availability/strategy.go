package availability

import (
	"context"
	"fmt"

	bookingRepo "clinicbook/database/repository/booking"
	catalogRepo "clinicbook/database/repository/catalog"
	"clinicbook/models"
)

// Strategy names.
const (
	StrategyNaive     = "naive"
	StrategyAggregate = "aggregate"
)

// Strategy computes the remaining slots of every treatment on a date. All
// strategies must return the same result for the same data.
type Strategy interface {
	Name() string
	Remaining(ctx context.Context, date string) ([]models.Availability, error)
}

// NaiveStrategy fetches the catalog and the day's bookings and subtracts in
// process.
type NaiveStrategy struct {
	Catalog  catalogRepo.CatalogRepository
	Bookings bookingRepo.BookingRepository
}

func (s *NaiveStrategy) Name() string { return StrategyNaive }

func (s *NaiveStrategy) Remaining(ctx context.Context, date string) ([]models.Availability, error) {
	options, err := s.Catalog.ListTreatments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	booked, err := s.Bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %q: %w", date, err)
	}
	return RemainingSlots(options, booked), nil
}

// AggregateStrategy delegates the join and subtraction to the store.
type AggregateStrategy struct {
	Catalog catalogRepo.CatalogRepository
}

func (s *AggregateStrategy) Name() string { return StrategyAggregate }

func (s *AggregateStrategy) Remaining(ctx context.Context, date string) ([]models.Availability, error) {
	result, err := s.Catalog.RemainingSlots(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("aggregate remaining slots for %q: %w", date, err)
	}
	return result, nil
}

// RemainingSlots subtracts the slots claimed by booked from each option's
// catalog. Bookings are assumed to be for a single date already; paid and
// unpaid bookings both claim their slot. Catalog order is preserved.
func RemainingSlots(options []models.TreatmentOption, booked []models.Booking) []models.Availability {
	claimed := make(map[string]map[string]struct{})
	for _, b := range booked {
		slots, ok := claimed[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			claimed[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	result := make([]models.Availability, 0, len(options))
	for _, opt := range options {
		taken := claimed[opt.Name]
		remaining := make([]string, 0, len(opt.Slots))
		for _, slot := range opt.Slots {
			if _, ok := taken[slot]; !ok {
				remaining = append(remaining, slot)
			}
		}
		result = append(result, models.Availability{
			TreatmentName:  opt.Name,
			Price:          opt.Price,
			RemainingSlots: remaining,
		})
	}
	return result
}
