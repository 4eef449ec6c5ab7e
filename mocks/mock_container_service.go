package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
	"portops/internal/service"
)

// MockContainerService is a mock implementation of service.ContainerService.
type MockContainerService struct {
	mock.Mock
}

func (m *MockContainerService) List(ctx context.Context, filter service.ContainerListFilter) ([]domain.ContainerView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContainerView), args.Error(1)
}

func (m *MockContainerService) Warnings(ctx context.Context, filter service.ContainerListFilter) (*domain.DeclarationWarnings, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationWarnings), args.Error(1)
}

func (m *MockContainerService) MismatchedDeclarations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContainerService) CompleteTally(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}

func (m *MockContainerService) Urge(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}

func (m *MockContainerService) ClassifyDetention(expiry string) domain.DetentionTier {
	args := m.Called(expiry)
	return args.Get(0).(domain.DetentionTier)
}
