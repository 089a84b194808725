package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinicbook/database"
	bookingRepo "clinicbook/database/repository/booking"
	paymentRepo "clinicbook/database/repository/payment"
	"clinicbook/metrics"
	"clinicbook/models"
)

// flakyBookings fails MarkPaid a fixed number of times.
type flakyBookings struct {
	bookingRepo.BookingRepository
	failures int
}

func (f *flakyBookings) MarkPaid(ctx context.Context, id, transactionID string) (int64, error) {
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("write concern timeout")
	}
	return f.BookingRepository.MarkPaid(ctx, id, transactionID)
}

type queuedRetry struct {
	calls [][2]string
	err   error
}

func (q *queuedRetry) ScheduleReconcile(ctx context.Context, bookingID, transactionID string) error {
	q.calls = append(q.calls, [2]string{bookingID, transactionID})
	return q.err
}

// stagedLedger holds writes made inside stagingTx until it commits.
type stagedLedger struct {
	paymentRepo.PaymentRepository
	pending []models.Payment
}

func (l *stagedLedger) Record(ctx context.Context, p *models.Payment) (bool, error) {
	p.ID = "staged-" + p.TransactionID
	l.pending = append(l.pending, *p)
	return true, nil
}

type stagingTx struct {
	ledger *stagedLedger
}

func (s stagingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	defer func() { s.ledger.pending = nil }()
	if err := fn(ctx); err != nil {
		return err
	}
	for i := range s.ledger.pending {
		if _, err := s.ledger.PaymentRepository.Record(ctx, &s.ledger.pending[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedBooking(t *testing.T, repo bookingRepo.BookingRepository) string {
	t.Helper()
	b := models.Booking{Treatment: "Cleaning", AppointmentDate: "May 5, 2025", Slot: "10:00", Email: "a@x.io"}
	require.NoError(t, repo.Create(context.Background(), &b))
	return b.ID
}

func TestRecordPaymentMarksBookingPaid(t *testing.T) {
	ctx := context.Background()
	bookings := bookingRepo.NewMemoryBookingRepo(true)
	ledger := paymentRepo.NewMemoryPaymentRepo()
	id := seedBooking(t, bookings)
	recorded := testutil.ToFloat64(metrics.PaymentCount(metrics.PaymentRecorded))

	r := NewReconciler(zap.NewNop(), ledger, bookings, nil, nil)
	res, err := r.RecordPayment(ctx, &models.Payment{
		BookingID:     id,
		TransactionID: "pi_123",
		Amount:        50,
		Email:         "a@x.io",
		Extra:         models.Extras{"price": 50.0},
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	b, err := bookings.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Paid)
	assert.Equal(t, "pi_123", b.TransactionID)

	entries, err := r.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50.0, entries[0].Extra["price"])
	assert.Equal(t, recorded+1, testutil.ToFloat64(metrics.PaymentCount(metrics.PaymentRecorded)))
}

func TestRecordPaymentReplayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	bookings := bookingRepo.NewMemoryBookingRepo(true)
	ledger := paymentRepo.NewMemoryPaymentRepo()
	id := seedBooking(t, bookings)
	r := NewReconciler(zap.NewNop(), ledger, bookings, database.NoTx{}, nil)

	first, err := r.RecordPayment(ctx, &models.Payment{BookingID: id, TransactionID: "pi_1"})
	require.NoError(t, err)
	second, err := r.RecordPayment(ctx, &models.Payment{BookingID: id, TransactionID: "pi_1"})
	require.NoError(t, err)

	assert.Equal(t, first.InsertedID, second.InsertedID)
	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecordPaymentUnknownBooking(t *testing.T) {
	ctx := context.Background()
	bookings := bookingRepo.NewMemoryBookingRepo(true)
	ledger := paymentRepo.NewMemoryPaymentRepo()
	orphaned := testutil.ToFloat64(metrics.PaymentCount(metrics.PaymentOrphaned))

	r := NewReconciler(zap.NewNop(), ledger, bookings, nil, nil)
	res, err := r.RecordPayment(ctx, &models.Payment{BookingID: "missing", TransactionID: "pi_9"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	entry, err := ledger.GetByTransactionID(ctx, "pi_9")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, orphaned+1, testutil.ToFloat64(metrics.PaymentCount(metrics.PaymentOrphaned)))
}

func TestRecordPaymentDefersFailedBookingUpdate(t *testing.T) {
	ctx := context.Background()
	inner := bookingRepo.NewMemoryBookingRepo(true)
	id := seedBooking(t, inner)
	bookings := &flakyBookings{BookingRepository: inner, failures: 1}
	ledger := paymentRepo.NewMemoryPaymentRepo()
	retry := &queuedRetry{}

	r := NewReconciler(zap.NewNop(), ledger, bookings, nil, retry)
	res, err := r.RecordPayment(ctx, &models.Payment{BookingID: id, TransactionID: "pi_2"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, [][2]string{{id, "pi_2"}}, retry.calls)

	b, err := inner.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, b.Paid)

	require.NoError(t, r.ApplyToBooking(ctx, id, "pi_2"))
	b, err = inner.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Paid)
	assert.Equal(t, "pi_2", b.TransactionID)
}

func TestRecordPaymentTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	inner := bookingRepo.NewMemoryBookingRepo(true)
	id := seedBooking(t, inner)
	bookings := &flakyBookings{BookingRepository: inner, failures: 1}
	ledger := &stagedLedger{PaymentRepository: paymentRepo.NewMemoryPaymentRepo()}
	retry := &queuedRetry{}

	r := NewReconciler(zap.NewNop(), ledger, bookings, stagingTx{ledger: ledger}, retry)

	_, err := r.RecordPayment(ctx, &models.Payment{BookingID: id, TransactionID: "pi_3"})
	require.Error(t, err)
	assert.Empty(t, retry.calls)

	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries, "ledger write must roll back with the booking update")

	_, err = r.RecordPayment(ctx, &models.Payment{BookingID: id, TransactionID: "pi_3"})
	require.NoError(t, err)
	entries, err = ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	b, err := inner.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Paid)
}

func TestRecordPaymentValidation(t *testing.T) {
	r := NewReconciler(zap.NewNop(), paymentRepo.NewMemoryPaymentRepo(), bookingRepo.NewMemoryBookingRepo(true), nil, nil)

	_, err := r.RecordPayment(context.Background(), &models.Payment{TransactionID: "pi_1"})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = r.RecordPayment(context.Background(), &models.Payment{BookingID: "b1"})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestMinorUnits(t *testing.T) {
	assert.EqualValues(t, 5000, MinorUnits(50))
	assert.EqualValues(t, 1999, MinorUnits(19.99))
}
