package services

import (
	"context"

	"github.com/exertrack/apiserver/internal/metrics"
	"github.com/exertrack/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, username string) (types.User, error)
	GetByID(ctx context.Context, id string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Create(ctx context.Context, username string) (types.User, error) {
	user, err := s.repo.Create(ctx, username)
	if err != nil {
		return types.User{}, err
	}
	metrics.UsersCreatedTotal.Inc()
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}
