package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
)

// MockTariffRepo is a mock implementation of port.TariffRepository.
type MockTariffRepo struct {
	mock.Mock
}

func (m *MockTariffRepo) List(ctx context.Context) ([]domain.ServicePrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServicePrice), args.Error(1)
}

func (m *MockTariffRepo) GetByID(ctx context.Context, id string) (*domain.ServicePrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePrice), args.Error(1)
}

func (m *MockTariffRepo) Update(ctx context.Context, price *domain.ServicePrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockTariffRepo) UpsertMany(ctx context.Context, prices []domain.ServicePrice) error {
	args := m.Called(ctx, prices)
	return args.Error(0)
}

func (m *MockTariffRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
