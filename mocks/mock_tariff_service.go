package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
	"portops/internal/service"
)

// MockTariffService is a mock implementation of service.TariffService.
type MockTariffService struct {
	mock.Mock
}

func (m *MockTariffService) List(ctx context.Context) ([]domain.ServicePrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServicePrice), args.Error(1)
}

func (m *MockTariffService) BulkUpsert(ctx context.Context, inputs []service.TariffInput) ([]domain.ServicePrice, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServicePrice), args.Error(1)
}

func (m *MockTariffService) Update(ctx context.Context, id string, input service.UpdateTariffInput) (*domain.ServicePrice, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePrice), args.Error(1)
}

func (m *MockTariffService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTariffService) BatchAdjust(ctx context.Context, input service.BatchAdjustInput) ([]domain.ServicePrice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServicePrice), args.Error(1)
}

func (m *MockTariffService) WeightFactor(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
