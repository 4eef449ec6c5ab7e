package service

import (
	"context"
	"fmt"
	"strings"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/reconcile"
)

// TariffInput is the DTO for creating or replacing a tariff row.
type TariffInput struct {
	ID           string               `json:"id" binding:"required"`
	Name         string               `json:"name" binding:"required"`
	Unit         string               `json:"unit"`
	Price        float64              `json:"price" binding:"gte=0"`
	Category     domain.PriceCategory `json:"category" binding:"required,oneof=WEIGHT UNIT"`
	Group        domain.PriceGroup    `json:"group"`
	SubGroup     domain.PriceSubGroup `json:"subGroup"`
	BusinessType domain.BusinessType  `json:"businessType"`
}

// UpdateTariffInput is the DTO for editing a tariff row. Nil fields are left unchanged.
type UpdateTariffInput struct {
	Name  *string  `json:"name"`
	Unit  *string  `json:"unit"`
	Price *float64 `json:"price"`
}

// BatchAdjustInput adjusts the price of several tariffs at once.
type BatchAdjustInput struct {
	IDs   []string              `json:"ids" binding:"required,min=1"`
	Type  domain.AdjustmentType `json:"type" binding:"required,oneof=PERCENT FIXED"`
	Value float64               `json:"value"`
	// Unit, when set, replaces the unit label of every adjusted row.
	Unit string `json:"unit"`
}

// TariffService defines the tariff management contract.
type TariffService interface {
	List(ctx context.Context) ([]domain.ServicePrice, error)
	BulkUpsert(ctx context.Context, inputs []TariffInput) ([]domain.ServicePrice, error)
	Update(ctx context.Context, id string, input UpdateTariffInput) (*domain.ServicePrice, error)
	Delete(ctx context.Context, id string) error
	BatchAdjust(ctx context.Context, input BatchAdjustInput) ([]domain.ServicePrice, error)
	WeightFactor(ctx context.Context) (float64, error)
}

type tariffService struct {
	repo          port.TariffRepository
	defaultFactor float64
}

// NewTariffService creates a new TariffService implementation. defaultFactor is
// used when the weight-factor tariff row is missing.
func NewTariffService(repo port.TariffRepository, defaultFactor float64) TariffService {
	if defaultFactor <= 0 {
		defaultFactor = reconcile.DefaultWeightFactor
	}
	return &tariffService{repo: repo, defaultFactor: defaultFactor}
}

func (s *tariffService) List(ctx context.Context) ([]domain.ServicePrice, error) {
	return s.repo.List(ctx)
}

func (s *tariffService) BulkUpsert(ctx context.Context, inputs []TariffInput) ([]domain.ServicePrice, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no tariffs given", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(inputs))
	prices := make([]domain.ServicePrice, 0, len(inputs))
	for _, in := range inputs {
		id := strings.TrimSpace(in.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: tariff id is required", domain.ErrInvalidInput)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTariff, id)
		}
		seen[id] = true

		group := in.Group
		if group == "" {
			group = domain.PriceGroupGeneral
		}
		prices = append(prices, domain.ServicePrice{
			ID:           id,
			Name:         in.Name,
			Unit:         in.Unit,
			Price:        in.Price,
			Category:     in.Category,
			Group:        group,
			SubGroup:     in.SubGroup,
			BusinessType: in.BusinessType,
		})
	}

	if err := s.repo.UpsertMany(ctx, prices); err != nil {
		return nil, err
	}
	return prices, nil
}

func (s *tariffService) Update(ctx context.Context, id string, input UpdateTariffInput) (*domain.ServicePrice, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
		}
		p.Price = *input.Price
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *tariffService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BatchAdjust applies one adjustment to every listed tariff and saves them
// together. Unknown ids fail the whole batch.
func (s *tariffService) BatchAdjust(ctx context.Context, input BatchAdjustInput) ([]domain.ServicePrice, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := reconcile.IndexTariffs(all)

	adjusted := make([]domain.ServicePrice, 0, len(input.IDs))
	for _, id := range input.IDs {
		p, ok := lookup[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrTariffNotFound, id)
		}
		price, err := reconcile.AdjustPrice(p.Price, input.Type, input.Value)
		if err != nil {
			return nil, err
		}
		if price < 0 {
			return nil, fmt.Errorf("%w: %s would become negative", domain.ErrInvalidAdjustment, id)
		}
		p.Price = price
		if input.Unit != "" {
			p.Unit = input.Unit
		}
		adjusted = append(adjusted, p)
	}

	if err := s.repo.UpsertMany(ctx, adjusted); err != nil {
		return nil, err
	}
	return adjusted, nil
}

func (s *tariffService) WeightFactor(ctx context.Context) (float64, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return reconcile.WeightFactor(reconcile.IndexTariffs(all), s.defaultFactor), nil
}
