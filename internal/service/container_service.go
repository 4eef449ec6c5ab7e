package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/reconcile"
)

// UnitFilterVehicles selects road vehicles in ContainerListFilter.Unit.
const UnitFilterVehicles = "XE"

// ContainerListFilter narrows the operations board.
type ContainerListFilter struct {
	VesselID *uuid.UUID
	// BusinessType EXPORT shows completed vehicles only and disables the mismatch overlay.
	BusinessType domain.BusinessType
	// Unit is "XE" for vehicles, otherwise a substring of the size code ("40", "HC").
	Unit string
	// Status matches the effective status, so MISMATCH can be filtered on.
	Status domain.ContainerStatus
}

// ContainerService defines the operations board contract.
type ContainerService interface {
	List(ctx context.Context, filter ContainerListFilter) ([]domain.ContainerView, error)
	Warnings(ctx context.Context, filter ContainerListFilter) (*domain.DeclarationWarnings, error)
	MismatchedDeclarations(ctx context.Context) ([]string, error)
	CompleteTally(ctx context.Context, id uuid.UUID) (*domain.Container, error)
	Urge(ctx context.Context, id uuid.UUID) (*domain.Container, error)
	ClassifyDetention(expiry string) domain.DetentionTier
}

type containerService struct {
	containers port.ContainerRepository
	vessels    port.VesselRepository
	email      port.EmailSender
	detention  domain.DetentionConfig
	depotEmail string
	now        Clock
}

// NewContainerService creates a new ContainerService implementation.
func NewContainerService(
	containers port.ContainerRepository,
	vessels port.VesselRepository,
	email port.EmailSender,
	detention domain.DetentionConfig,
	depotEmail string,
	clock Clock,
) ContainerService {
	return &containerService{
		containers: containers,
		vessels:    vessels,
		email:      email,
		detention:  detention,
		depotEmail: depotEmail,
		now:        clockOrSystem(clock),
	}
}

// board loads every container, derives the mismatch set over all of them and
// returns the filtered subset. Declarations are matched across vessels.
func (s *containerService) board(ctx context.Context, filter ContainerListFilter) ([]domain.Container, reconcile.DeclarationSet, error) {
	all, err := s.containers.List(ctx, port.ContainerFilter{})
	if err != nil {
		return nil, nil, err
	}

	mismatched := reconcile.DeclarationSet{}
	if filter.BusinessType != domain.BusinessTypeExport {
		mismatched = reconcile.DetectMismatchedDeclarations(all)
	}

	out := make([]domain.Container, 0, len(all))
	for i := range all {
		c := &all[i]
		if filter.BusinessType == domain.BusinessTypeExport &&
			(c.UnitType != domain.UnitTypeVehicle || c.Status != domain.ContainerStatusCompleted) {
			continue
		}
		if filter.VesselID != nil && c.VesselID != *filter.VesselID {
			continue
		}
		if !matchesUnit(c, filter.Unit) {
			continue
		}
		if filter.Status != "" && reconcile.EffectiveStatus(c, mismatched) != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, mismatched, nil
}

func matchesUnit(c *domain.Container, unit string) bool {
	unit = strings.ToUpper(strings.TrimSpace(unit))
	if unit == "" || unit == "ALL" {
		return true
	}
	size := strings.ToUpper(c.Size)
	if unit == UnitFilterVehicles {
		return c.UnitType == domain.UnitTypeVehicle || strings.Contains(size, UnitFilterVehicles)
	}
	return strings.Contains(size, unit)
}

func (s *containerService) List(ctx context.Context, filter ContainerListFilter) ([]domain.ContainerView, error) {
	containers, mismatched, err := s.board(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]domain.ContainerView, 0, len(containers))
	for i := range containers {
		c := &containers[i]
		views = append(views, domain.ContainerView{
			Container:       *c,
			EffectiveStatus: reconcile.EffectiveStatus(c, mismatched),
			Detention:       reconcile.ClassifyDetentionString(c.DetExpiry, s.detention, now),
		})
	}
	return views, nil
}

func (s *containerService) Warnings(ctx context.Context, filter ContainerListFilter) (*domain.DeclarationWarnings, error) {
	if filter.BusinessType == domain.BusinessTypeExport {
		w := reconcile.Warnings(nil, nil)
		return &w, nil
	}
	containers, mismatched, err := s.board(ctx, filter)
	if err != nil {
		return nil, err
	}
	w := reconcile.Warnings(containers, mismatched)
	return &w, nil
}

func (s *containerService) MismatchedDeclarations(ctx context.Context) ([]string, error) {
	all, err := s.containers.List(ctx, port.ContainerFilter{})
	if err != nil {
		return nil, err
	}
	return reconcile.DetectMismatchedDeclarations(all).Sorted(), nil
}

// CompleteTally marks the container COMPLETED. Completing twice keeps the
// first completion timestamp, which the inventory rollup reads.
func (s *containerService) CompleteTally(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	return s.containers.Complete(ctx, id, s.now())
}

// Urge records a follow-up on the container's paperwork and notifies the depot.
// updatedAt is left alone.
func (s *containerService) Urge(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	c, err := s.containers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vessel, err := s.vessels.GetByID(ctx, c.VesselID)
	if err != nil {
		return nil, fmt.Errorf("containerService.Urge vessel: %w", err)
	}

	now := s.now()
	if err := s.containers.MarkUrged(ctx, id, now); err != nil {
		return nil, err
	}
	c.LastUrgedAt = &now

	if s.depotEmail != "" {
		notice := port.UrgeNotice{
			VesselName:  vessel.VesselName,
			VoyageNo:    vessel.VoyageNo,
			ContainerNo: c.ContainerNo,
			TkNhaVC:     c.TkNhaVC,
			DetExpiry:   c.DetExpiry,
		}
		if err := s.email.SendUrgeNotice(ctx, s.depotEmail, notice); err != nil {
			log.Printf("containerService: urge email for container %s failed: %v", c.ContainerNo, err)
		}
	}
	return c, nil
}

func (s *containerService) ClassifyDetention(expiry string) domain.DetentionTier {
	return reconcile.ClassifyDetentionString(expiry, s.detention, s.now())
}
