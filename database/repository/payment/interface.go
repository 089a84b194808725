// File: database/repository/payment/interface.go
package paymentRepo

import (
	"context"

	"clinicbook/models"
)

// PaymentRepository is the append-only payment ledger, keyed by transaction id.
type PaymentRepository interface {
	// Record appends p unless an entry with the same transaction id exists.
	// p.ID is set to the stored entry's id either way; inserted reports
	// whether this call wrote it.
	Record(ctx context.Context, p *models.Payment) (inserted bool, err error)
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
}
