package bookingRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryConstraints(t *testing.T) {
	ctx := context.Background()

	t.Run("same client same day", func(t *testing.T) {
		repo := NewMemoryBookingRepo(false)
		require.NoError(t, repo.Create(ctx, newBooking()))

		other := newBooking()
		other.Slot = "11:00"
		assert.ErrorIs(t, repo.Create(ctx, other), ErrDuplicateBooking)
	})

	t.Run("slot claim", func(t *testing.T) {
		repo := NewMemoryBookingRepo(true)
		require.NoError(t, repo.Create(ctx, newBooking()))

		other := newBooking()
		other.Email = "b@x.io"
		assert.ErrorIs(t, repo.Create(ctx, other), ErrSlotTaken)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}

func TestMemoryMarkPaid(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo(true)
	b := newBooking()
	require.NoError(t, repo.Create(ctx, b))

	matched, err := repo.MarkPaid(ctx, b.ID, "pi_1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Equal(t, "pi_1", got.TransactionID)

	matched, err = repo.MarkPaid(ctx, "missing", "pi_2")
	require.NoError(t, err)
	assert.EqualValues(t, 0, matched)
}
