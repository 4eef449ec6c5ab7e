package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portops/internal/domain"
)

// DefaultVATRate is the VAT applied to debit note lines.
const DefaultVATRate = 0.08

// TariffLookup indexes tariff rows by id.
type TariffLookup map[string]domain.ServicePrice

// IndexTariffs builds a TariffLookup. Later duplicates win.
func IndexTariffs(prices []domain.ServicePrice) TariffLookup {
	lookup := make(TariffLookup, len(prices))
	for i := range prices {
		lookup[prices[i].ID] = prices[i]
	}
	return lookup
}

// DefaultServiceLines returns the six fixed debit note lines for a vessel.
// The storage line is named after the billing month and the vessel.
func DefaultServiceLines(vesselName, voyageNo string, billingMonth time.Time) []domain.ServiceLine {
	storage := fmt.Sprintf("Phí thuê kho Tháng %d/%s-Tàu %s",
		int(billingMonth.Month()), billingMonth.Format("06"), vesselName)
	if voyageNo != "" {
		storage += fmt.Sprintf(" (%s)", voyageNo)
	}

	return []domain.ServiceLine{
		{TariffID: "1", Name: "Phí khai thác hàng nhập kho", Category: domain.PriceCategoryWeight, Unit: "đồng/tấn"},
		{TariffID: "2", Name: "Phí khai thác hàng xuất kho", Category: domain.PriceCategoryWeight, Unit: "đồng/tấn"},
		{TariffID: "3", Name: "Phí xếp lô hàng trong kho", Category: domain.PriceCategoryWeight, Unit: "đồng/tấn"},
		{TariffID: "4", Name: "Phí trả container về bãi sau khai thác", Category: domain.PriceCategoryUnit, Unit: "đồng/cont"},
		{TariffID: "5", Name: "Phí vận chuyển (từ kho Danalog- Cảng Tiên Sa)", Category: domain.PriceCategoryWeight, Unit: "đồng/tấn"},
		{TariffID: "6", Name: storage, Category: domain.PriceCategoryWeight, Unit: "đồng/tấn thông qua"},
	}
}

// TotalsFromContainers sums weight and counts units for billing.
func TotalsFromContainers(containers []domain.Container) domain.VesselTotals {
	s := Summarize(containers)
	return domain.VesselTotals{TotalWeight: s.TotalWeight, ContainerCount: s.TotalContainers}
}

// ComputeDebitRows prices each line against the tariff table. WEIGHT lines are
// charged on total tonnage, UNIT lines on the container count. Amounts are
// rounded to whole currency units; a missing tariff prices the line at zero.
func ComputeDebitRows(totals domain.VesselTotals, tariffs TariffLookup, lines []domain.ServiceLine, vatRate float64) domain.DebitNote {
	rate := decimal.NewFromFloat(vatRate)
	note := domain.DebitNote{
		Totals:  totals,
		VATRate: vatRate,
		Rows:    make([]domain.DebitRow, 0, len(lines)),
	}

	for i, line := range lines {
		qty := totals.TotalWeight
		if line.Category == domain.PriceCategoryUnit {
			qty = float64(totals.ContainerCount)
		}
		price := tariffs[line.TariffID].Price

		amount := decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(price)).Round(0)
		vat := amount.Mul(rate).Round(0)

		row := domain.DebitRow{
			No:              i + 1,
			Service:         line.Name,
			Quantity:        qty,
			Unit:            line.Unit,
			UnitPrice:       price,
			AmountBeforeVAT: amount.IntPart(),
			VAT:             vat.IntPart(),
		}
		row.Total = row.AmountBeforeVAT + row.VAT
		note.Rows = append(note.Rows, row)

		note.AmountBeforeVAT += row.AmountBeforeVAT
		note.VAT += row.VAT
	}
	note.Total = note.AmountBeforeVAT + note.VAT
	return note
}
