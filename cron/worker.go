package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"clinicbook/models"
	"clinicbook/services/tasks"
)

// BookingApplier re-applies a payment to its booking.
type BookingApplier interface {
	ApplyToBooking(ctx context.Context, bookingID, transactionID string) error
}

// ReconcileWorker processes payment:reconcile tasks.
type ReconcileWorker struct {
	srv    *asynq.Server
	logger *zap.Logger
}

// InitReconcileWorker starts the async worker in the background.
func InitReconcileWorker(redisOpts asynq.RedisClientOpt, applier BookingApplier, logger *zap.Logger) (*ReconcileWorker, error) {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePaymentReconcile, handleReconcileTask(applier, logger))

	logger.Info("Starting reconcile worker")
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start reconcile worker: %w", err)
	}
	return &ReconcileWorker{srv: srv, logger: logger}, nil
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *ReconcileWorker) Shutdown() {
	w.srv.Shutdown()
	w.logger.Info("Reconcile worker stopped")
}

func handleReconcileTask(applier BookingApplier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reconcile payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := applier.ApplyToBooking(ctx, p.BookingID, p.TransactionID); err != nil {
			logger.Warn("Reconcile attempt failed",
				zap.String("bookingID", p.BookingID),
				zap.String("transactionID", p.TransactionID),
				zap.Error(err))
			return err
		}
		logger.Info("Booking reconciled",
			zap.String("bookingID", p.BookingID),
			zap.String("transactionID", p.TransactionID))
		return nil
	}
}
