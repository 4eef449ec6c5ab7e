package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/service"
	"portops/mocks"
)

func TestStatsService_GetStats(t *testing.T) {
	vessels := new(mocks.MockVesselRepo)
	containers := new(mocks.MockContainerRepo)
	svc := service.NewStatsService(vessels, containers, domain.DefaultDetentionConfig, fixedClock)

	vessels.On("List", mock.Anything, 0, 1).Return([]domain.Vessel{{}}, 2, nil)
	containers.On("List", mock.Anything, port.ContainerFilter{}).Return(board(uuid.New(), uuid.New()), nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.OperationsStats{
		Vessels:         2,
		Total:           3,
		Pending:         1,
		Ready:           1,
		InProgress:      0,
		Completed:       1,
		Mismatched:      2,
		UrgentDetention: 1,
	}, stats)
}

func TestStatsService_GetStats_Empty(t *testing.T) {
	vessels := new(mocks.MockVesselRepo)
	containers := new(mocks.MockContainerRepo)
	svc := service.NewStatsService(vessels, containers, domain.DefaultDetentionConfig, fixedClock)

	vessels.On("List", mock.Anything, 0, 1).Return([]domain.Vessel{}, 0, nil)
	containers.On("List", mock.Anything, port.ContainerFilter{}).Return([]domain.Container{}, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.OperationsStats{}, stats)
}

func TestStatsService_GetStats_RepoError(t *testing.T) {
	vessels := new(mocks.MockVesselRepo)
	containers := new(mocks.MockContainerRepo)
	svc := service.NewStatsService(vessels, containers, domain.DefaultDetentionConfig, fixedClock)

	vessels.On("List", mock.Anything, 0, 1).Return(nil, 0, errors.New("db down"))

	_, err := svc.GetStats(context.Background())
	assert.EqualError(t, err, "db down")
	containers.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
