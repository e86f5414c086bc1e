package service

import (
	"context"

	"github.com/GestionTG-25-26/tg-backend/internal/users/domain"
	"github.com/GestionTG-25-26/tg-backend/internal/users/repository"
)

// UserService answers identity and role questions for the workflow layer. It
// implements the RoleChecker port of the proyectos service.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetByFirebaseUID retrieves a provisioned account.
func (s *UserService) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return s.repo.GetByFirebaseUID(ctx, uid)
}

// HasRole reports whether the user holds the given global role. An unknown
// user simply has no role.
func (s *UserService) HasRole(ctx context.Context, userID, role string) (bool, error) {
	user, err := s.repo.GetByFirebaseUID(ctx, userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}

// Provision creates or updates an account with the given role.
func (s *UserService) Provision(ctx context.Context, user *domain.User) error {
	return s.repo.Upsert(ctx, user)
}
