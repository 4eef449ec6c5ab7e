package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"portops/internal/domain"
)

// DefaultWeightFactor is tonnes per package when no weight-factor tariff exists.
const DefaultWeightFactor = 1.8

// ComputePeriodRollup builds the inventory balance of one vessel for a month.
// COMPLETED containers are bucketed by updatedAt (UTC): before the month is
// opening balance, inside the month is inbound. Outbound is taken to equal
// inbound (the whole lot leaves in the period it arrives), so closing always
// equals opening.
func ComputePeriodRollup(containers []domain.Container, month, year int, weightFactor float64) (*domain.PeriodRollup, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.ErrInvalidPeriod
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	openingPkgs, inboundPkgs := 0, 0
	inbound := []domain.Container{}
	for i := range containers {
		c := &containers[i]
		if c.Status != domain.ContainerStatusCompleted || c.UpdatedAt.IsZero() {
			continue
		}
		completedAt := c.UpdatedAt.UTC()
		switch {
		case completedAt.Before(start):
			openingPkgs += c.Pkgs
		case completedAt.Before(end):
			inboundPkgs += c.Pkgs
			inbound = append(inbound, *c)
		}
	}

	outboundPkgs := inboundPkgs
	closingPkgs := openingPkgs + inboundPkgs - outboundPkgs

	return &domain.PeriodRollup{
		Month:             month,
		Year:              year,
		WeightFactor:      weightFactor,
		Opening:           toQuantity(openingPkgs, weightFactor),
		Inbound:           toQuantity(inboundPkgs, weightFactor),
		Outbound:          toQuantity(outboundPkgs, weightFactor),
		Closing:           toQuantity(closingPkgs, weightFactor),
		InboundContainers: inbound,
	}, nil
}

// Tonnage converts a package count to tonnes.
func Tonnage(pkgs int, weightFactor float64) float64 {
	return decimal.NewFromInt(int64(pkgs)).Mul(decimal.NewFromFloat(weightFactor)).InexactFloat64()
}

func toQuantity(pkgs int, weightFactor float64) domain.Quantity {
	return domain.Quantity{Pkgs: pkgs, Weight: Tonnage(pkgs, weightFactor)}
}
