package providerRepo

import (
	"context"

	"clinicbook/models"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// Create inserts a new provider record, assigning its ID.
	Create(ctx context.Context, provider *models.Provider) error
	// GetAll retrieves all providers.
	GetAll(ctx context.Context) ([]models.Provider, error)
	// Delete removes a provider record by its ID. Deleting an unknown ID
	// reports zero and no error.
	Delete(ctx context.Context, id string) (deleted int64, err error)
}
