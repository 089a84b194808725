package userRepo

import (
	"context"
	"errors"

	"clinicbook/models"
)

// ErrEmailTaken is returned by Create when an account already uses the email.
var ErrEmailTaken = errors.New("an account with this email already exists")

// UserRepository defines methods for account data access.
type UserRepository interface {
	// Create inserts a new account, assigning its ID.
	Create(ctx context.Context, account *models.Account) error
	// GetAll retrieves all accounts.
	GetAll(ctx context.Context) ([]models.Account, error)
	// GetByEmail returns nil without error when no account matches.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// GetByID returns nil without error when no account matches.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// SetRole changes the role of the account with the given ID.
	SetRole(ctx context.Context, id, role string) (matched, modified int64, err error)
}
