package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
	"portops/internal/port"
)

// MockContainerRepo is a mock implementation of port.ContainerRepository.
type MockContainerRepo struct {
	mock.Mock

	Merged        []domain.Container
	MergedSummary domain.ImportSummary
}

func (m *MockContainerRepo) List(ctx context.Context, filter port.ContainerFilter) ([]domain.Container, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockContainerRepo) ListByVessel(ctx context.Context, vesselID uuid.UUID) ([]domain.Container, error) {
	args := m.Called(ctx, vesselID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockContainerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}

func (m *MockContainerRepo) MarkUrged(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockContainerRepo) Complete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Container, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}

// MergeForVessel feeds merge the stored set given as the first return value
// and records what merge produced in Merged and MergedSummary. The second
// return value is the error reported after merging.
func (m *MockContainerRepo) MergeForVessel(ctx context.Context, vesselID uuid.UUID, merge port.MergeFunc) error {
	args := m.Called(ctx, vesselID)
	var existing []domain.Container
	if args.Get(0) != nil {
		existing = args.Get(0).([]domain.Container)
	}
	merged, summary, err := merge(existing)
	if err != nil {
		return err
	}
	m.Merged = merged
	m.MergedSummary = summary
	return args.Error(1)
}
