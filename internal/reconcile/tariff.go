package reconcile

import (
	"github.com/shopspring/decimal"

	"portops/internal/domain"
)

// WeightFactor reads the tonnes-per-package factor from the tariff table.
func WeightFactor(tariffs TariffLookup, fallback float64) float64 {
	if p, ok := tariffs[domain.WeightFactorTariffID]; ok && p.Price > 0 {
		return p.Price
	}
	return fallback
}

// AdjustPrice applies a batch adjustment. PERCENT rounds to a whole currency unit.
func AdjustPrice(price float64, kind domain.AdjustmentType, value float64) (float64, error) {
	switch kind {
	case domain.AdjustmentPercent:
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(value).Div(decimal.NewFromInt(100)))
		return decimal.NewFromFloat(price).Mul(factor).Round(0).InexactFloat64(), nil
	case domain.AdjustmentFixed:
		return decimal.NewFromFloat(price).Add(decimal.NewFromFloat(value)).InexactFloat64(), nil
	default:
		return 0, domain.ErrInvalidAdjustment
	}
}
