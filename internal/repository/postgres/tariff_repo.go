package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"portops/internal/domain"
	"portops/internal/port"
)

const upsertTariffQuery = `INSERT INTO tariffs (
		id, name, unit, price, category, price_group, sub_group, business_type, updated_at
	) VALUES (
		:id, :name, :unit, :price, :category, :price_group, :sub_group, :business_type, :updated_at
	)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		unit = EXCLUDED.unit,
		price = EXCLUDED.price,
		category = EXCLUDED.category,
		price_group = EXCLUDED.price_group,
		sub_group = EXCLUDED.sub_group,
		business_type = EXCLUDED.business_type,
		updated_at = EXCLUDED.updated_at`

type tariffRepo struct {
	db *sqlx.DB
}

// NewTariffRepo creates a new PostgreSQL-backed TariffRepository.
func NewTariffRepo(db *sqlx.DB) port.TariffRepository {
	return &tariffRepo{db: db}
}

func (r *tariffRepo) List(ctx context.Context) ([]domain.ServicePrice, error) {
	prices := []domain.ServicePrice{}
	err := r.db.SelectContext(ctx, &prices,
		"SELECT * FROM tariffs ORDER BY price_group, business_type, id")
	if err != nil {
		return nil, fmt.Errorf("tariffRepo.List: %w", err)
	}
	return prices, nil
}

func (r *tariffRepo) GetByID(ctx context.Context, id string) (*domain.ServicePrice, error) {
	var p domain.ServicePrice
	err := r.db.GetContext(ctx, &p, "SELECT * FROM tariffs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTariffNotFound
		}
		return nil, fmt.Errorf("tariffRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *tariffRepo) Update(ctx context.Context, p *domain.ServicePrice) error {
	p.UpdatedAt = time.Now().UTC()
	query := `UPDATE tariffs SET
			name = :name, unit = :unit, price = :price, category = :category,
			price_group = :price_group, sub_group = :sub_group,
			business_type = :business_type, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("tariffRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTariffNotFound
	}
	return nil
}

func (r *tariffRepo) UpsertMany(ctx context.Context, prices []domain.ServicePrice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("tariffRepo.UpsertMany begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	for i := range prices {
		prices[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, upsertTariffQuery, &prices[i]); err != nil {
			return fmt.Errorf("tariffRepo.UpsertMany %s: %w", prices[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tariffRepo.UpsertMany commit: %w", err)
	}
	return nil
}

func (r *tariffRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tariffs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("tariffRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTariffNotFound
	}
	return nil
}
