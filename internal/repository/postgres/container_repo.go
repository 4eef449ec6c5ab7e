package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"portops/internal/domain"
	"portops/internal/port"
)

const upsertContainerQuery = `INSERT INTO containers (
		id, vessel_id, unit_type, container_no, size, seal_no, carrier,
		pkgs, weight, customs_pkgs, customs_weight, bill_no, vendor, det_expiry,
		tk_nha_vc, ngay_tk_nha_vc, tk_dnl_ola, ngay_tk_dnl, ngay_ke_hoach, noi_ha_rong,
		status, updated_at, tally_approved, work_order_approved, remarks, last_urged_at
	) VALUES (
		:id, :vessel_id, :unit_type, :container_no, :size, :seal_no, :carrier,
		:pkgs, :weight, :customs_pkgs, :customs_weight, :bill_no, :vendor, :det_expiry,
		:tk_nha_vc, :ngay_tk_nha_vc, :tk_dnl_ola, :ngay_tk_dnl, :ngay_ke_hoach, :noi_ha_rong,
		:status, :updated_at, :tally_approved, :work_order_approved, :remarks, :last_urged_at
	) ON CONFLICT (id) DO UPDATE SET
		unit_type = EXCLUDED.unit_type, container_no = EXCLUDED.container_no,
		size = EXCLUDED.size, seal_no = EXCLUDED.seal_no, carrier = EXCLUDED.carrier,
		pkgs = EXCLUDED.pkgs, weight = EXCLUDED.weight,
		customs_pkgs = EXCLUDED.customs_pkgs, customs_weight = EXCLUDED.customs_weight,
		bill_no = EXCLUDED.bill_no, vendor = EXCLUDED.vendor, det_expiry = EXCLUDED.det_expiry,
		tk_nha_vc = EXCLUDED.tk_nha_vc, ngay_tk_nha_vc = EXCLUDED.ngay_tk_nha_vc,
		tk_dnl_ola = EXCLUDED.tk_dnl_ola, ngay_tk_dnl = EXCLUDED.ngay_tk_dnl,
		ngay_ke_hoach = EXCLUDED.ngay_ke_hoach, noi_ha_rong = EXCLUDED.noi_ha_rong,
		status = EXCLUDED.status, updated_at = EXCLUDED.updated_at,
		tally_approved = EXCLUDED.tally_approved, work_order_approved = EXCLUDED.work_order_approved,
		remarks = EXCLUDED.remarks, last_urged_at = EXCLUDED.last_urged_at`

type containerRepo struct {
	db *sqlx.DB
}

// NewContainerRepo creates a new PostgreSQL-backed ContainerRepository.
func NewContainerRepo(db *sqlx.DB) port.ContainerRepository {
	return &containerRepo{db: db}
}

func (r *containerRepo) List(ctx context.Context, filter port.ContainerFilter) ([]domain.Container, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.VesselID != nil {
		args = append(args, *filter.VesselID)
		where = append(where, fmt.Sprintf("vessel_id = $%d", len(args)))
	}

	query := "SELECT * FROM containers"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC, container_no"

	containers := []domain.Container{}
	if err := r.db.SelectContext(ctx, &containers, query, args...); err != nil {
		return nil, fmt.Errorf("containerRepo.List: %w", err)
	}
	return containers, nil
}

func (r *containerRepo) ListByVessel(ctx context.Context, vesselID uuid.UUID) ([]domain.Container, error) {
	containers := []domain.Container{}
	err := r.db.SelectContext(ctx, &containers,
		"SELECT * FROM containers WHERE vessel_id = $1 ORDER BY container_no", vesselID)
	if err != nil {
		return nil, fmt.Errorf("containerRepo.ListByVessel: %w", err)
	}
	return containers, nil
}

func (r *containerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	var c domain.Container
	err := r.db.GetContext(ctx, &c, "SELECT * FROM containers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContainerNotFound
		}
		return nil, fmt.Errorf("containerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *containerRepo) MarkUrged(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE containers SET last_urged_at = $1 WHERE id = $2", at, id)
	if err != nil {
		return fmt.Errorf("containerRepo.MarkUrged: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrContainerNotFound
	}
	return nil
}

// Complete only writes rows that are not yet COMPLETED, so a second
// completion keeps the first updated_at.
func (r *containerRepo) Complete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Container, error) {
	var c domain.Container
	err := r.db.GetContext(ctx, &c,
		`UPDATE containers SET status = $2, tally_approved = TRUE, updated_at = $3
		 WHERE id = $1 AND status <> $2
		 RETURNING *`,
		id, string(domain.ContainerStatusCompleted), at)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("containerRepo.Complete: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *containerRepo) MergeForVessel(ctx context.Context, vesselID uuid.UUID, merge port.MergeFunc) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("containerRepo.MergeForVessel begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The vessel row lock serializes imports for one vessel; the container
	// row locks hold off completions and urges until the merged set is written.
	var locked uuid.UUID
	if err := tx.GetContext(ctx, &locked, "SELECT id FROM vessels WHERE id = $1 FOR UPDATE", vesselID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrVesselNotFound
		}
		return fmt.Errorf("containerRepo.MergeForVessel lock vessel: %w", err)
	}
	existing := []domain.Container{}
	if err := tx.SelectContext(ctx, &existing,
		"SELECT * FROM containers WHERE vessel_id = $1 ORDER BY container_no FOR UPDATE", vesselID); err != nil {
		return fmt.Errorf("containerRepo.MergeForVessel read: %w", err)
	}

	containers, summary, err := merge(existing)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE vessels SET total_containers = $1, total_pkgs = $2, total_weight = $3, updated_at = NOW()
		 WHERE id = $4`,
		summary.TotalContainers, summary.TotalPkgs, summary.TotalWeight, vesselID); err != nil {
		return fmt.Errorf("containerRepo.MergeForVessel totals: %w", err)
	}

	keep := make(pq.StringArray, 0, len(containers))
	for i := range containers {
		if containers[i].VesselID != vesselID {
			return fmt.Errorf("containerRepo.MergeForVessel: container %s belongs to vessel %s",
				containers[i].ContainerNo, containers[i].VesselID)
		}
		if _, err := tx.NamedExecContext(ctx, upsertContainerQuery, &containers[i]); err != nil {
			return fmt.Errorf("containerRepo.MergeForVessel upsert %s: %w", containers[i].ContainerNo, err)
		}
		keep = append(keep, containers[i].ID.String())
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM containers WHERE vessel_id = $1 AND NOT (id::text = ANY($2::text[]))",
		vesselID, keep); err != nil {
		return fmt.Errorf("containerRepo.MergeForVessel prune: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("containerRepo.MergeForVessel commit: %w", err)
	}
	return nil
}
