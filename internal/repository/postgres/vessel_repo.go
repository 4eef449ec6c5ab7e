package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"portops/internal/domain"
	"portops/internal/port"
)

type vesselRepo struct {
	db *sqlx.DB
}

// NewVesselRepo creates a new PostgreSQL-backed VesselRepository.
func NewVesselRepo(db *sqlx.DB) port.VesselRepository {
	return &vesselRepo{db: db}
}

func (r *vesselRepo) Create(ctx context.Context, vessel *domain.Vessel) error {
	vessel.ID = uuid.New()
	now := time.Now().UTC()
	vessel.CreatedAt = now
	vessel.UpdatedAt = now
	if vessel.DebitStatus == "" {
		vessel.DebitStatus = domain.DebitStatusUnpaid
	}
	if vessel.ExportNotifiedDepts == nil {
		vessel.ExportNotifiedDepts = pq.StringArray{}
	}

	query := `INSERT INTO vessels (
			id, vessel_name, voyage_no, commodity, consignee, eta, etd,
			total_containers, total_pkgs, total_weight, debit_status,
			export_plan_active, export_arrival_time, export_operation_time,
			export_planned_weight, export_notified_depts, created_at, updated_at
		) VALUES (
			:id, :vessel_name, :voyage_no, :commodity, :consignee, :eta, :etd,
			:total_containers, :total_pkgs, :total_weight, :debit_status,
			:export_plan_active, :export_arrival_time, :export_operation_time,
			:export_planned_weight, :export_notified_depts, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, vessel); err != nil {
		return fmt.Errorf("vesselRepo.Create: %w", err)
	}
	return nil
}

func (r *vesselRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	var vessel domain.Vessel
	err := r.db.GetContext(ctx, &vessel, "SELECT * FROM vessels WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVesselNotFound
		}
		return nil, fmt.Errorf("vesselRepo.GetByID: %w", err)
	}
	return &vessel, nil
}

func (r *vesselRepo) List(ctx context.Context, offset, limit int) ([]domain.Vessel, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vessels"); err != nil {
		return nil, 0, fmt.Errorf("vesselRepo.List count: %w", err)
	}

	var vessels []domain.Vessel
	err := r.db.SelectContext(ctx, &vessels,
		"SELECT * FROM vessels ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vesselRepo.List: %w", err)
	}
	return vessels, total, nil
}

func (r *vesselRepo) Update(ctx context.Context, vessel *domain.Vessel) error {
	vessel.UpdatedAt = time.Now().UTC()
	if vessel.ExportNotifiedDepts == nil {
		vessel.ExportNotifiedDepts = pq.StringArray{}
	}

	query := `UPDATE vessels SET
			vessel_name = :vessel_name,
			voyage_no = :voyage_no,
			commodity = :commodity,
			consignee = :consignee,
			eta = :eta,
			etd = :etd,
			debit_status = :debit_status,
			export_plan_active = :export_plan_active,
			export_arrival_time = :export_arrival_time,
			export_operation_time = :export_operation_time,
			export_planned_weight = :export_planned_weight,
			export_notified_depts = :export_notified_depts,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, vessel)
	if err != nil {
		return fmt.Errorf("vesselRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVesselNotFound
	}
	return nil
}

func (r *vesselRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vessels WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("vesselRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVesselNotFound
	}
	return nil
}
