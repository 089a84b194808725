package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"clinicbook/models"
)

const TypePaymentReconcile = "payment:reconcile"

func NewReconcileTask(payload models.ReconcilePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentReconcile, b)
	opts := []asynq.Option{
		// One pending retry per transaction.
		asynq.TaskID(TypePaymentReconcile + ":" + payload.TransactionID),
		asynq.MaxRetry(10),
		asynq.Timeout(30 * time.Second),
	}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReconcileScheduler queues payment:reconcile tasks.
type ReconcileScheduler struct {
	Client Enqueuer
}

func (s *ReconcileScheduler) ScheduleReconcile(ctx context.Context, bookingID, transactionID string) error {
	task, opts, err := NewReconcileTask(models.ReconcilePayload{
		BookingID:     bookingID,
		TransactionID: transactionID,
	})
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypePaymentReconcile, err)
	}
	return nil
}
