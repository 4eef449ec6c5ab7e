package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"portops/internal/domain"
)

// VesselRepository defines the contract for vessel persistence.
type VesselRepository interface {
	Create(ctx context.Context, vessel *domain.Vessel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vessel, int, error)
	Update(ctx context.Context, vessel *domain.Vessel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContainerFilter narrows container listings. A nil VesselID lists every vessel.
type ContainerFilter struct {
	VesselID *uuid.UUID
}

// ContainerRepository defines the contract for container persistence.
// List results are ordered by updated_at descending.
type ContainerRepository interface {
	List(ctx context.Context, filter ContainerFilter) ([]domain.Container, error)
	ListByVessel(ctx context.Context, vesselID uuid.UUID) ([]domain.Container, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Container, error)
	// MarkUrged stamps last_urged_at and touches nothing else.
	MarkUrged(ctx context.Context, id uuid.UUID, at time.Time) error
	// Complete moves a container to COMPLETED with tally approved, stamping
	// at as its completion time. An already completed container is returned
	// unchanged.
	Complete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Container, error)
	// MergeForVessel hands the vessel's stored containers to merge and installs
	// the result as the vessel's complete set, writing the summary onto the
	// vessel row. The stored set stays locked from read to write.
	MergeForVessel(ctx context.Context, vesselID uuid.UUID, merge MergeFunc) error
}

// MergeFunc builds a vessel's new container set from the set currently stored.
type MergeFunc func(existing []domain.Container) ([]domain.Container, domain.ImportSummary, error)

// TariffRepository defines the contract for tariff persistence.
type TariffRepository interface {
	List(ctx context.Context) ([]domain.ServicePrice, error)
	GetByID(ctx context.Context, id string) (*domain.ServicePrice, error)
	Update(ctx context.Context, price *domain.ServicePrice) error
	// UpsertMany inserts or replaces prices by id in a single transaction.
	UpsertMany(ctx context.Context, prices []domain.ServicePrice) error
	Delete(ctx context.Context, id string) error
}
