package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
)

// MockVesselRepo is a mock implementation of port.VesselRepository.
type MockVesselRepo struct {
	mock.Mock
}

func (m *MockVesselRepo) Create(ctx context.Context, vessel *domain.Vessel) error {
	args := m.Called(ctx, vessel)
	return args.Error(0)
}

func (m *MockVesselRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vessel), args.Error(1)
}

func (m *MockVesselRepo) List(ctx context.Context, offset, limit int) ([]domain.Vessel, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Vessel), args.Int(1), args.Error(2)
}

func (m *MockVesselRepo) Update(ctx context.Context, vessel *domain.Vessel) error {
	args := m.Called(ctx, vessel)
	return args.Error(0)
}

func (m *MockVesselRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
