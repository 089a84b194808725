package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
)

// ErrInvalidAccount wraps validation failures of a new account.
var ErrInvalidAccount = errors.New("invalid account")

// CreateAccount stores a new account. Roles cannot be self-assigned, and an
// email that is already registered is reported in the result rather than as
// an error.
func (s *DefaultUserService) CreateAccount(ctx context.Context, account *models.Account) (models.WriteResult, error) {
	if err := s.validate.Struct(account); err != nil {
		return models.WriteResult{}, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}
	account.ID = ""
	account.Role = ""

	err := s.Repo.Create(ctx, account)
	if errors.Is(err, userRepo.ErrEmailTaken) {
		return models.WriteResult{Acknowledged: false, Message: "user already exists"}, nil
	}
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("create account: %w", err)
	}
	return models.WriteResult{Acknowledged: true, InsertedID: account.ID}, nil
}

// IsAdmin is false for unknown emails.
func (s *DefaultUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("lookup account: %w", err)
	}
	return account.IsAdmin(), nil
}

// PromoteToAdmin grants the admin role to an existing account. An unknown id
// matches nothing and creates nothing.
func (s *DefaultUserService) PromoteToAdmin(ctx context.Context, id string) (models.WriteResult, error) {
	matched, modified, err := s.Repo.SetRole(ctx, id, models.RoleAdmin)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("promote account: %w", err)
	}
	return models.WriteResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}, nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.Account, error) {
	return s.Repo.GetAll(ctx)
}
