// Package mocks contains hand-written testify mocks for the domain
// interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"shield/internal/domain/entity"
)

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) RegisterPushToken(ctx context.Context, userID int64, token, name string) error {
	args := m.Called(ctx, userID, token, name)

	return args.Error(0)
}

func (m *UserRepository) ListPushTokensExcept(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

// LocationRepository is a mock implementation of repository.LocationRepository.
type LocationRepository struct {
	mock.Mock
}

func (m *LocationRepository) Upsert(ctx context.Context, userID int64, lat, lon float64) error {
	args := m.Called(ctx, userID, lat, lon)

	return args.Error(0)
}

func (m *LocationRepository) ListAll(ctx context.Context) ([]*entity.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Location), args.Error(1)
}

// EmergencyRepository is a mock implementation of repository.EmergencyRepository.
type EmergencyRepository struct {
	mock.Mock
}

func (m *EmergencyRepository) Create(ctx context.Context, emergency *entity.Emergency) error {
	args := m.Called(ctx, emergency)

	return args.Error(0)
}

func (m *EmergencyRepository) ListRecent(ctx context.Context, since *time.Time, excludeUser int64, limit int) ([]*entity.Emergency, error) {
	args := m.Called(ctx, since, excludeUser, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Emergency), args.Error(1)
}
