package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
	"portops/internal/reconcile"
	"portops/internal/service"
)

// MockVesselService is a mock implementation of service.VesselService.
type MockVesselService struct {
	mock.Mock
}

func (m *MockVesselService) Create(ctx context.Context, input service.CreateVesselInput) (*domain.Vessel, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vessel), args.Error(1)
}

func (m *MockVesselService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vessel), args.Error(1)
}

func (m *MockVesselService) List(ctx context.Context, offset, limit int) ([]domain.Vessel, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Vessel), args.Int(1), args.Error(2)
}

func (m *MockVesselService) Update(ctx context.Context, id uuid.UUID, input service.UpdateVesselInput) (*domain.Vessel, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vessel), args.Error(1)
}

func (m *MockVesselService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVesselService) ImportManifest(ctx context.Context, id uuid.UUID, input service.ImportManifestInput) (*reconcile.ImportResult, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.ImportResult), args.Error(1)
}

func (m *MockVesselService) NotifyExportPlan(ctx context.Context, id uuid.UUID, input service.ExportPlanInput) (*domain.Vessel, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vessel), args.Error(1)
}
