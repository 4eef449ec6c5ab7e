package service

import (
	"context"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/reconcile"
)

// StatsService provides aggregate statistics for the operations dashboard.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.OperationsStats, error)
}

type statsService struct {
	vessels    port.VesselRepository
	containers port.ContainerRepository
	detention  domain.DetentionConfig
	now        Clock
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(vessels port.VesselRepository, containers port.ContainerRepository, detention domain.DetentionConfig, clock Clock) StatsService {
	return &statsService{
		vessels:    vessels,
		containers: containers,
		detention:  detention,
		now:        clockOrSystem(clock),
	}
}

// GetStats counts containers across all vessels. Pending means the inland
// declaration is still missing on a container that is not yet completed.
func (s *statsService) GetStats(ctx context.Context) (*domain.OperationsStats, error) {
	_, vesselCount, err := s.vessels.List(ctx, 0, 1)
	if err != nil {
		return nil, err
	}
	all, err := s.containers.List(ctx, port.ContainerFilter{})
	if err != nil {
		return nil, err
	}

	mismatched := reconcile.DetectMismatchedDeclarations(all)
	now := s.now()

	stats := &domain.OperationsStats{Vessels: vesselCount, Total: len(all)}
	for i := range all {
		c := &all[i]
		switch c.Status {
		case domain.ContainerStatusReady:
			stats.Ready++
		case domain.ContainerStatusInProgress:
			stats.InProgress++
		case domain.ContainerStatusCompleted:
			stats.Completed++
		}
		if reconcile.IsContainerMismatched(c, mismatched) {
			stats.Mismatched++
		}
		if c.Status == domain.ContainerStatusCompleted {
			continue
		}
		if c.TkDnlOla == "" {
			stats.Pending++
		}
		if reconcile.ClassifyDetentionString(c.DetExpiry, s.detention, now) == domain.DetentionUrgent {
			stats.UrgentDetention++
		}
	}
	return stats, nil
}
