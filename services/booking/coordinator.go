package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	bookingRepo "clinicbook/database/repository/booking"
	catalogRepo "clinicbook/database/repository/catalog"
	"clinicbook/metrics"
	"clinicbook/models"
)

// ErrInvalidRequest wraps validation failures of a booking request.
var ErrInvalidRequest = errors.New("invalid booking request")

// DateInvalidator drops any cached availability for a date.
type DateInvalidator interface {
	Invalidate(ctx context.Context, date string) error
}

// Coordinator accepts or softly rejects booking requests.
type Coordinator struct {
	bookings    bookingRepo.BookingRepository
	catalog     catalogRepo.CatalogRepository
	invalidator DateInvalidator
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewCoordinator wires the booking flow. A nil catalog skips the check that
// the slot is offered by the treatment; a nil invalidator skips cache
// invalidation.
func NewCoordinator(logger *zap.Logger, bookings bookingRepo.BookingRepository, catalog catalogRepo.CatalogRepository, invalidator DateInvalidator) *Coordinator {
	return &Coordinator{
		bookings:    bookings,
		catalog:     catalog,
		invalidator: invalidator,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Create books req if the client has no booking for the same treatment on the
// same date. Conflicts are reported in the result, not as errors.
func (c *Coordinator) Create(ctx context.Context, req models.Booking) (models.BookingResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return models.BookingResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	existing, err := c.bookings.FindForClientDay(ctx, req.Treatment, req.AppointmentDate, req.Email)
	if err != nil {
		return models.BookingResult{}, fmt.Errorf("check existing bookings: %w", err)
	}
	if len(existing) > 0 {
		return c.reject(metrics.BookingDuplicate, duplicateMessage(req.AppointmentDate)), nil
	}

	if c.catalog != nil {
		offered, err := c.offers(ctx, req.Treatment, req.Slot)
		if err != nil {
			return models.BookingResult{}, err
		}
		if !offered {
			return c.reject(metrics.BookingNotOffered, fmt.Sprintf("%s is not offered for %s", req.Slot, req.Treatment)), nil
		}
	}

	// Payment state is owned by the reconciler.
	req.ID = ""
	req.Paid = false
	req.TransactionID = ""

	err = c.bookings.Create(ctx, &req)
	switch {
	case errors.Is(err, bookingRepo.ErrDuplicateBooking):
		return c.reject(metrics.BookingDuplicate, duplicateMessage(req.AppointmentDate)), nil
	case errors.Is(err, bookingRepo.ErrSlotTaken):
		return c.reject(metrics.BookingSlotTaken, fmt.Sprintf("%s on %s is no longer available", req.Slot, req.AppointmentDate)), nil
	case err != nil:
		return models.BookingResult{}, fmt.Errorf("create booking: %w", err)
	}

	if c.invalidator != nil {
		if err := c.invalidator.Invalidate(ctx, req.AppointmentDate); err != nil {
			c.logger.Warn("Failed to invalidate availability cache",
				zap.String("date", req.AppointmentDate), zap.Error(err))
		}
	}

	metrics.IncBooking(metrics.BookingAccepted)
	c.logger.Info("Booking accepted",
		zap.String("bookingID", req.ID),
		zap.String("treatment", req.Treatment),
		zap.String("date", req.AppointmentDate),
		zap.String("slot", req.Slot))
	return models.BookingResult{Accepted: true, InsertedID: req.ID}, nil
}

func (c *Coordinator) offers(ctx context.Context, treatment, slot string) (bool, error) {
	opt, err := c.catalog.GetByName(ctx, treatment)
	if err != nil {
		return false, fmt.Errorf("lookup treatment %q: %w", treatment, err)
	}
	if opt == nil {
		return false, nil
	}
	for _, s := range opt.Slots {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

func (c *Coordinator) reject(outcome, message string) models.BookingResult {
	metrics.IncBooking(outcome)
	c.logger.Info("Booking rejected", zap.String("reason", outcome), zap.String("message", message))
	return models.BookingResult{Accepted: false, Message: message}
}

func duplicateMessage(date string) string {
	return "You already have a booking on " + date
}

// ForClient lists the bookings made with email.
func (c *Coordinator) ForClient(ctx context.Context, email string) ([]models.Booking, error) {
	return c.bookings.FindByEmail(ctx, email)
}

// Get returns nil without error for an unknown id.
func (c *Coordinator) Get(ctx context.Context, id string) (*models.Booking, error) {
	return c.bookings.GetByID(ctx, id)
}
