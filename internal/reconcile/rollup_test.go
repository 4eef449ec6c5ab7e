package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portops/internal/domain"
)

func completedAt(no string, pkgs int, at time.Time) domain.Container {
	return domain.Container{ContainerNo: no, Pkgs: pkgs, Status: domain.ContainerStatusCompleted, UpdatedAt: at}
}

func TestComputePeriodRollup(t *testing.T) {
	containers := []domain.Container{
		completedAt("A", 16, time.Date(2025, 2, 27, 10, 0, 0, 0, time.UTC)),
		completedAt("B", 16, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		completedAt("C", 10, time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)),
		completedAt("D", 99, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
		{ContainerNo: "E", Pkgs: 50, Status: domain.ContainerStatusReady, UpdatedAt: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	r, err := ComputePeriodRollup(containers, 3, 2025, 1.8)
	require.NoError(t, err)

	assert.Equal(t, domain.Quantity{Pkgs: 16, Weight: 28.8}, r.Opening)
	assert.Equal(t, domain.Quantity{Pkgs: 26, Weight: 46.8}, r.Inbound)
	assert.Equal(t, r.Inbound, r.Outbound)
	assert.Equal(t, r.Opening, r.Closing)
	require.Len(t, r.InboundContainers, 2)
	assert.Equal(t, "B", r.InboundContainers[0].ContainerNo)
	assert.Equal(t, "C", r.InboundContainers[1].ContainerNo)
}

func TestComputePeriodRollup_UsesUTCMonth(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*3600)
	// 2025-04-01 05:00 local is still March 31 in UTC
	c := completedAt("A", 16, time.Date(2025, 4, 1, 5, 0, 0, 0, hcm))

	r, err := ComputePeriodRollup([]domain.Container{c}, 3, 2025, 1.8)
	require.NoError(t, err)
	assert.Equal(t, 16, r.Inbound.Pkgs)
}

func TestComputePeriodRollup_ClosingInvariant(t *testing.T) {
	containers := []domain.Container{
		completedAt("A", 7, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
		completedAt("B", 3, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
	}
	for month := 1; month <= 12; month++ {
		r, err := ComputePeriodRollup(containers, month, 2025, 2)
		require.NoError(t, err)
		assert.Equal(t, r.Opening.Pkgs+r.Inbound.Pkgs-r.Outbound.Pkgs, r.Closing.Pkgs)
	}
}

func TestComputePeriodRollup_InvalidPeriod(t *testing.T) {
	_, err := ComputePeriodRollup(nil, 13, 2025, 1.8)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = ComputePeriodRollup(nil, 0, 2025, 1.8)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestComputePeriodRollup_Empty(t *testing.T) {
	r, err := ComputePeriodRollup(nil, 3, 2025, 1.8)
	require.NoError(t, err)
	assert.Zero(t, r.Closing.Pkgs)
	assert.NotNil(t, r.InboundContainers)
}
