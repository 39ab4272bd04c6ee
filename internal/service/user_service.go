package service

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"discussion-service/internal/entity"
	"discussion-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// UserService provides CRUD and search over the user directory.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if strings.TrimSpace(user.Email) == "" {
		return nil, ErrValidation
	}

	createdUser, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrConflict
		}
		logger.Error().Err(err).Msg("Error creating user")
		return nil, ErrStorage
	}

	return createdUser, nil
}

func (s *UserService) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	updatedUser, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrConflict
		}
		logger.Error().Err(err).Msgf("Error updating user %d", user.ID)
		return nil, ErrStorage
	}

	return updatedUser, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) (*entity.User, error) {
	deletedUser, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return nil, ErrStorage
	}

	return deletedUser, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, ErrStorage
	}

	return users, nil
}

// SearchUsers matches name as a case-insensitive substring.
func (s *UserService) SearchUsers(ctx context.Context, name string) ([]*entity.User, error) {
	users, err := s.userRepo.SearchUsersByName(ctx, name)
	if err != nil {
		logger.Error().Err(err).Msgf("Error searching users by name %q", name)
		return nil, ErrStorage
	}

	return users, nil
}
