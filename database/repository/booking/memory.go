// File: database/repository/booking/memory.go
package bookingRepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicbook/models"
)

type memoryBookingRepo struct {
	mu               sync.RWMutex
	bookings         []models.Booking
	enforceSlotClaim bool
}

// NewMemoryBookingRepo returns a process-local BookingRepository with the
// same unique constraints as the Mongo indexes.
func NewMemoryBookingRepo(enforceSlotClaim bool) BookingRepository {
	return &memoryBookingRepo{enforceSlotClaim: enforceSlotClaim}
}

func (r *memoryBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.Treatment != b.Treatment || existing.AppointmentDate != b.AppointmentDate {
			continue
		}
		if existing.Email == b.Email {
			return ErrDuplicateBooking
		}
		if r.enforceSlotClaim && existing.Slot == b.Slot {
			return ErrSlotTaken
		}
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now().UTC()
	r.bookings = append(r.bookings, clone(*b))
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			out := clone(b)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.AppointmentDate == date }), nil
}

func (r *memoryBookingRepo) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Email == email }), nil
}

func (r *memoryBookingRepo) FindForClientDay(ctx context.Context, treatment, date, email string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.Treatment == treatment && b.AppointmentDate == date && b.Email == email
	}), nil
}

func (r *memoryBookingRepo) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, clone(b))
		}
	}
	return out
}

func (r *memoryBookingRepo) MarkPaid(ctx context.Context, id, transactionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Paid = true
			r.bookings[i].TransactionID = transactionID
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memoryBookingRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func clone(b models.Booking) models.Booking {
	if b.Extra != nil {
		extra := make(models.Extras, len(b.Extra))
		for k, v := range b.Extra {
			extra[k] = v
		}
		b.Extra = extra
	}
	return b
}
