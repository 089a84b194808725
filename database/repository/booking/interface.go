// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"clinicbook/models"
)

var (
	// ErrDuplicateBooking is returned by Create when the client already holds
	// a booking for the same treatment on the same date.
	ErrDuplicateBooking = errors.New("booking already exists for treatment, date and email")
	// ErrSlotTaken is returned by Create when slot claims are enforced and the
	// slot is already booked for that treatment and date.
	ErrSlotTaken = errors.New("slot already booked")
)

type BookingRepository interface {
	// Create assigns ID and CreatedAt and inserts b.
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// FindForClientDay matches treatment, date and email exactly.
	FindForClientDay(ctx context.Context, treatment, date, email string) ([]models.Booking, error)
	// MarkPaid sets paid and transactionId. Zero matched is not an error.
	MarkPaid(ctx context.Context, id, transactionID string) (matched int64, err error)
	Count(ctx context.Context) (int64, error)
}
