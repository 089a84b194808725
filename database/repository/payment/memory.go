// File: database/repository/payment/memory.go
package paymentRepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicbook/models"
)

type memoryPaymentRepo struct {
	mu      sync.RWMutex
	entries []models.Payment
}

func NewMemoryPaymentRepo() PaymentRepository {
	return &memoryPaymentRepo{}
}

func (r *memoryPaymentRepo) Record(ctx context.Context, p *models.Payment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.TransactionID == p.TransactionID {
			p.ID = e.ID
			return false, nil
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *p)
	return true, nil
}

func (r *memoryPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.TransactionID == transactionID {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryPaymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Payment{}, r.entries...), nil
}
