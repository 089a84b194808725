package providerRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicbook/models"
)

// MemoryProviderRepo keeps providers in process memory.
type MemoryProviderRepo struct {
	mu   sync.RWMutex
	byID map[string]models.Provider
}

func NewMemoryProviderRepo() *MemoryProviderRepo {
	return &MemoryProviderRepo{byID: make(map[string]models.Provider)}
}

func (r *MemoryProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	provider.CreatedAt = time.Now().UTC()
	r.byID[provider.ID] = *provider
	return nil
}

func (r *MemoryProviderRepo) GetAll(ctx context.Context) ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Provider, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryProviderRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}
