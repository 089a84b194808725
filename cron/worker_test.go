package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinicbook/models"
	"clinicbook/services/tasks"
)

type fakeApplier struct {
	got [][2]string
	err error
}

func (f *fakeApplier) ApplyToBooking(ctx context.Context, bookingID, transactionID string) error {
	f.got = append(f.got, [2]string{bookingID, transactionID})
	return f.err
}

func TestHandleReconcileTask(t *testing.T) {
	task, _, err := tasks.NewReconcileTask(models.ReconcilePayload{BookingID: "b1", TransactionID: "pi_1"})
	require.NoError(t, err)

	t.Run("applies payload", func(t *testing.T) {
		a := &fakeApplier{}
		require.NoError(t, handleReconcileTask(a, zap.NewNop())(context.Background(), task))
		assert.Equal(t, [][2]string{{"b1", "pi_1"}}, a.got)
	})

	t.Run("store failure is retried", func(t *testing.T) {
		a := &fakeApplier{err: errors.New("timeout")}
		err := handleReconcileTask(a, zap.NewNop())(context.Background(), task)
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		bad := asynq.NewTask(tasks.TypePaymentReconcile, []byte("{"))
		err := handleReconcileTask(&fakeApplier{}, zap.NewNop())(context.Background(), bad)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
