package userRepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicbook/models"
)

// MemoryUserRepo keeps accounts in process memory.
type MemoryUserRepo struct {
	mu       sync.RWMutex
	accounts []models.Account
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (r *MemoryUserRepo) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == account.Email {
			return ErrEmailTaken
		}
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now().UTC()
	r.accounts = append(r.accounts, *account)
	return nil
}

func (r *MemoryUserRepo) GetAll(ctx context.Context) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Account{}, r.accounts...), nil
}

func (r *MemoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.find(func(a models.Account) bool { return a.Email == email }), nil
}

func (r *MemoryUserRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.find(func(a models.Account) bool { return a.ID == id }), nil
}

func (r *MemoryUserRepo) find(match func(models.Account) bool) *models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if match(a) {
			out := a
			return &out
		}
	}
	return nil
}

func (r *MemoryUserRepo) SetRole(ctx context.Context, id, role string) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].ID == id {
			if r.accounts[i].Role == role {
				return 1, 0, nil
			}
			r.accounts[i].Role = role
			return 1, 1, nil
		}
	}
	return 0, 0, nil
}
