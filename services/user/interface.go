package user

import (
	"context"

	"github.com/go-playground/validator/v10"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
)

type UserService interface {
	// Registration
	CreateAccount(ctx context.Context, account *models.Account) (models.WriteResult, error)

	// Roles
	IsAdmin(ctx context.Context, email string) (bool, error)
	PromoteToAdmin(ctx context.Context, id string) (models.WriteResult, error)

	// Admin / Utility
	GetAllUsers(ctx context.Context) ([]models.Account, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	validate *validator.Validate
}

func NewUserService(repo userRepo.UserRepository) *DefaultUserService {
	return &DefaultUserService{Repo: repo, validate: validator.New()}
}
