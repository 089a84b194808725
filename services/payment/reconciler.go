package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"clinicbook/database"
	bookingRepo "clinicbook/database/repository/booking"
	paymentRepo "clinicbook/database/repository/payment"
	"clinicbook/metrics"
	"clinicbook/models"
)

// ErrInvalidPayment wraps validation failures of a payment record.
var ErrInvalidPayment = errors.New("invalid payment")

// RetryScheduler queues a later attempt at marking a booking paid.
type RetryScheduler interface {
	ScheduleReconcile(ctx context.Context, bookingID, transactionID string) error
}

// Reconciler records gateway payments in the ledger and marks the matching
// booking paid.
type Reconciler struct {
	ledger   paymentRepo.PaymentRepository
	bookings bookingRepo.BookingRepository
	tx       database.TxRunner
	retry    RetryScheduler
	validate *validator.Validate
	logger   *zap.Logger
}

// NewReconciler builds a reconciler. With a non-nil tx both writes commit
// together and any failure is returned; with a nil tx they run in sequence
// and a failed booking update is handed to retry.
func NewReconciler(logger *zap.Logger, ledger paymentRepo.PaymentRepository, bookings bookingRepo.BookingRepository, tx database.TxRunner, retry RetryScheduler) *Reconciler {
	return &Reconciler{
		ledger:   ledger,
		bookings: bookings,
		tx:       tx,
		retry:    retry,
		validate: validator.New(),
		logger:   logger,
	}
}

// RecordPayment appends p to the ledger and sets paid on its booking. The
// returned acknowledgment is that of the ledger write. Replaying the same
// transaction id neither duplicates the entry nor fails.
func (r *Reconciler) RecordPayment(ctx context.Context, p *models.Payment) (models.WriteResult, error) {
	if err := r.validate.Struct(p); err != nil {
		return models.WriteResult{}, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	var (
		inserted bool
		matched  int64
	)
	if r.tx != nil {
		err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			if inserted, err = r.ledger.Record(ctx, p); err != nil {
				return fmt.Errorf("record payment: %w", err)
			}
			if matched, err = r.bookings.MarkPaid(ctx, p.BookingID, p.TransactionID); err != nil {
				return fmt.Errorf("mark booking paid: %w", err)
			}
			return nil
		})
		if err != nil {
			return models.WriteResult{}, err
		}
	} else {
		var err error
		if inserted, err = r.ledger.Record(ctx, p); err != nil {
			return models.WriteResult{}, fmt.Errorf("record payment: %w", err)
		}
		matched, err = r.bookings.MarkPaid(ctx, p.BookingID, p.TransactionID)
		if err != nil {
			r.deferUpdate(ctx, p, err)
			r.countLedger(inserted)
			return ack(p), nil
		}
	}

	r.countLedger(inserted)
	if matched == 0 {
		metrics.IncPayment(metrics.PaymentOrphaned)
		r.logger.Warn("Payment recorded for unknown booking",
			zap.String("bookingID", p.BookingID),
			zap.String("transactionID", p.TransactionID))
	}
	return ack(p), nil
}

func (r *Reconciler) countLedger(inserted bool) {
	if inserted {
		metrics.IncPayment(metrics.PaymentRecorded)
	} else {
		metrics.IncPayment(metrics.PaymentReplayed)
	}
}

// deferUpdate hands a failed booking update to the retry queue. The ledger entry
// already stands, so failures here are only logged.
func (r *Reconciler) deferUpdate(ctx context.Context, p *models.Payment, cause error) {
	metrics.IncPayment(metrics.PaymentDeferred)
	r.logger.Warn("Booking update failed after ledger write",
		zap.String("bookingID", p.BookingID),
		zap.String("transactionID", p.TransactionID),
		zap.Error(cause))

	if r.retry == nil {
		r.logger.Error("No retry queue configured; booking stays unpaid until the payment is replayed",
			zap.String("transactionID", p.TransactionID))
		return
	}
	if err := r.retry.ScheduleReconcile(ctx, p.BookingID, p.TransactionID); err != nil {
		r.logger.Error("Failed to schedule reconcile retry",
			zap.String("transactionID", p.TransactionID), zap.Error(err))
	}
}

// ApplyToBooking marks bookingID paid. It is what the retry worker runs; an
// unknown booking is not an error.
func (r *Reconciler) ApplyToBooking(ctx context.Context, bookingID, transactionID string) error {
	matched, err := r.bookings.MarkPaid(ctx, bookingID, transactionID)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	if matched == 0 {
		r.logger.Warn("Reconcile target booking not found",
			zap.String("bookingID", bookingID),
			zap.String("transactionID", transactionID))
	}
	return nil
}

// History lists the ledger.
func (r *Reconciler) History(ctx context.Context) ([]models.Payment, error) {
	return r.ledger.List(ctx)
}

func ack(p *models.Payment) models.WriteResult {
	return models.WriteResult{Acknowledged: true, InsertedID: p.ID}
}
