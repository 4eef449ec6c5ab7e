package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/reconcile"
)

// CreateVesselInput is the DTO for registering a vessel call.
type CreateVesselInput struct {
	VesselName string `json:"vesselName" binding:"required"`
	VoyageNo   string `json:"voyageNo"`
	Commodity  string `json:"commodity"`
	Consignee  string `json:"consignee"`
	ETA        string `json:"eta"`
	ETD        string `json:"etd"`
}

// UpdateVesselInput is the DTO for updating a vessel call. Nil fields are left unchanged.
type UpdateVesselInput struct {
	VesselName  *string             `json:"vesselName"`
	VoyageNo    *string             `json:"voyageNo"`
	Commodity   *string             `json:"commodity"`
	Consignee   *string             `json:"consignee"`
	ETA         *string             `json:"eta"`
	ETD         *string             `json:"etd"`
	DebitStatus *domain.DebitStatus `json:"debitStatus"`
}

// ImportManifestInput carries raw manifest rows for one vessel.
type ImportManifestInput struct {
	Rows []reconcile.RawRow `json:"rows" binding:"required"`
}

// ExportPlanInput is the DTO for announcing an export loading plan.
type ExportPlanInput struct {
	ArrivalTime   string   `json:"arrivalTime" binding:"required"`
	OperationTime string   `json:"operationTime" binding:"required"`
	PlannedWeight float64  `json:"plannedWeight" binding:"gte=0"`
	Departments   []string `json:"departments" binding:"required,min=1"`
}

// VesselService defines the vessel and manifest import contract.
type VesselService interface {
	Create(ctx context.Context, input CreateVesselInput) (*domain.Vessel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vessel, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVesselInput) (*domain.Vessel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ImportManifest(ctx context.Context, id uuid.UUID, input ImportManifestInput) (*reconcile.ImportResult, error)
	NotifyExportPlan(ctx context.Context, id uuid.UUID, input ExportPlanInput) (*domain.Vessel, error)
}

type vesselService struct {
	vessels    port.VesselRepository
	containers port.ContainerRepository
	email      port.EmailSender
	reconciler *reconcile.Reconciler
	deptEmails []string
	now        Clock
}

// NewVesselService creates a new VesselService implementation.
func NewVesselService(
	vessels port.VesselRepository,
	containers port.ContainerRepository,
	email port.EmailSender,
	reconciler *reconcile.Reconciler,
	deptEmails []string,
	clock Clock,
) VesselService {
	return &vesselService{
		vessels:    vessels,
		containers: containers,
		email:      email,
		reconciler: reconciler,
		deptEmails: deptEmails,
		now:        clockOrSystem(clock),
	}
}

func (s *vesselService) Create(ctx context.Context, input CreateVesselInput) (*domain.Vessel, error) {
	name := strings.TrimSpace(input.VesselName)
	if name == "" {
		return nil, fmt.Errorf("%w: vessel name is required", domain.ErrInvalidInput)
	}
	vessel := &domain.Vessel{
		VesselName:  name,
		VoyageNo:    strings.TrimSpace(input.VoyageNo),
		Commodity:   input.Commodity,
		Consignee:   input.Consignee,
		ETA:         reconcile.NormalizeDate(input.ETA),
		ETD:         reconcile.NormalizeDate(input.ETD),
		DebitStatus: domain.DebitStatusUnpaid,
	}
	if err := s.vessels.Create(ctx, vessel); err != nil {
		return nil, err
	}
	return vessel, nil
}

func (s *vesselService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	return s.vessels.GetByID(ctx, id)
}

func (s *vesselService) List(ctx context.Context, offset, limit int) ([]domain.Vessel, int, error) {
	return s.vessels.List(ctx, offset, limit)
}

func (s *vesselService) Update(ctx context.Context, id uuid.UUID, input UpdateVesselInput) (*domain.Vessel, error) {
	vessel, err := s.vessels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VesselName != nil {
		name := strings.TrimSpace(*input.VesselName)
		if name == "" {
			return nil, fmt.Errorf("%w: vessel name is required", domain.ErrInvalidInput)
		}
		vessel.VesselName = name
	}
	if input.VoyageNo != nil {
		vessel.VoyageNo = strings.TrimSpace(*input.VoyageNo)
	}
	if input.Commodity != nil {
		vessel.Commodity = *input.Commodity
	}
	if input.Consignee != nil {
		vessel.Consignee = *input.Consignee
	}
	if input.ETA != nil {
		vessel.ETA = reconcile.NormalizeDate(*input.ETA)
	}
	if input.ETD != nil {
		vessel.ETD = reconcile.NormalizeDate(*input.ETD)
	}
	if input.DebitStatus != nil {
		if !input.DebitStatus.Valid() {
			return nil, fmt.Errorf("%w: unknown debit status %q", domain.ErrInvalidInput, *input.DebitStatus)
		}
		vessel.DebitStatus = *input.DebitStatus
	}

	if err := s.vessels.Update(ctx, vessel); err != nil {
		return nil, err
	}
	return vessel, nil
}

func (s *vesselService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.vessels.Delete(ctx, id)
}

// ImportManifest reconciles rows against the vessel's stored containers and
// installs the result as the vessel's complete container set.
func (s *vesselService) ImportManifest(ctx context.Context, id uuid.UUID, input ImportManifestInput) (*reconcile.ImportResult, error) {
	if _, err := s.vessels.GetByID(ctx, id); err != nil {
		return nil, err
	}

	now := s.now()
	var result *reconcile.ImportResult
	err := s.containers.MergeForVessel(ctx, id, func(existing []domain.Container) ([]domain.Container, domain.ImportSummary, error) {
		r, err := s.reconciler.Reconcile(input.Rows, id, existing, now)
		if err != nil {
			return nil, domain.ImportSummary{}, err
		}
		result = r
		return r.Containers, r.Summary, nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("vesselService: imported %d rows into vessel %s (%d containers, %d skipped)",
		len(input.Rows), id, result.Summary.TotalContainers, result.Summary.SkippedRows)
	return result, nil
}

// NotifyExportPlan activates the vessel's export plan and emails the
// configured department addresses. A failed email does not undo the plan.
func (s *vesselService) NotifyExportPlan(ctx context.Context, id uuid.UUID, input ExportPlanInput) (*domain.Vessel, error) {
	depts, err := normalizeDepartments(input.Departments)
	if err != nil {
		return nil, err
	}

	vessel, err := s.vessels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vessel.ExportPlanActive = true
	vessel.ExportArrivalTime = input.ArrivalTime
	vessel.ExportOperationTime = input.OperationTime
	vessel.ExportPlannedWeight = input.PlannedWeight
	vessel.ExportNotifiedDepts = pq.StringArray(depts)

	if err := s.vessels.Update(ctx, vessel); err != nil {
		return nil, err
	}

	if len(s.deptEmails) > 0 {
		notice := port.ExportPlanNotice{
			VesselName:    vessel.VesselName,
			VoyageNo:      vessel.VoyageNo,
			ArrivalTime:   vessel.ExportArrivalTime,
			OperationTime: vessel.ExportOperationTime,
			PlannedWeight: vessel.ExportPlannedWeight,
			Departments:   depts,
		}
		if err := s.email.SendExportPlanNotice(ctx, s.deptEmails, notice); err != nil {
			log.Printf("vesselService: export plan email for vessel %s failed: %v", id, err)
		}
	}

	return vessel, nil
}

var knownDepartments = map[string]string{
	strings.ToLower(domain.DepartmentTransport): domain.DepartmentTransport,
	strings.ToLower(domain.DepartmentDepot):     domain.DepartmentDepot,
	strings.ToLower(domain.DepartmentInspector): domain.DepartmentInspector,
}

func normalizeDepartments(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, d := range in {
		name, ok := knownDepartments[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown department %q", domain.ErrInvalidInput, d)
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one department is required", domain.ErrInvalidInput)
	}
	return out, nil
}
