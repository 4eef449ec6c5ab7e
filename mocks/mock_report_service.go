package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Inventory(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.InventoryReport, error) {
	args := m.Called(ctx, vesselID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryReport), args.Error(1)
}

func (m *MockReportService) RenderInventory(ctx context.Context, vesselID uuid.UUID, month, year int, out io.Writer) (*domain.InventoryReport, error) {
	args := m.Called(ctx, vesselID, month, year, out)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryReport), args.Error(1)
}

func (m *MockReportService) ArchiveInventory(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.ArchivedReport, error) {
	args := m.Called(ctx, vesselID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchivedReport), args.Error(1)
}

func (m *MockReportService) DebitNote(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.DebitNote, error) {
	args := m.Called(ctx, vesselID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitNote), args.Error(1)
}
