package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	before := testutil.ToFloat64(BookingCount(BookingAccepted))
	IncBooking(BookingAccepted)
	assert.Equal(t, before+1, testutil.ToFloat64(BookingCount(BookingAccepted)))

	before = testutil.ToFloat64(PaymentCount(PaymentOrphaned))
	IncPayment(PaymentOrphaned)
	assert.Equal(t, before+1, testutil.ToFloat64(PaymentCount(PaymentOrphaned)))

	assert.NotPanics(t, func() {
		IncAvailability("naive", "miss")
	})
}
