package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Vessel represents a single voyage call. Its totals are derived from its
// container set and are rewritten whenever that set is replaced.
type Vessel struct {
	ID                  uuid.UUID      `db:"id" json:"id"`
	VesselName          string         `db:"vessel_name" json:"vesselName"`
	VoyageNo            string         `db:"voyage_no" json:"voyageNo"`
	Commodity           string         `db:"commodity" json:"commodity"`
	Consignee           string         `db:"consignee" json:"consignee"`
	ETA                 string         `db:"eta" json:"eta"`
	ETD                 string         `db:"etd" json:"etd"`
	TotalContainers     int            `db:"total_containers" json:"totalContainers"`
	TotalPkgs           int            `db:"total_pkgs" json:"totalPkgs"`
	TotalWeight         float64        `db:"total_weight" json:"totalWeight"`
	DebitStatus         DebitStatus    `db:"debit_status" json:"debitStatus"`
	ExportPlanActive    bool           `db:"export_plan_active" json:"exportPlanActive"`
	ExportArrivalTime   string         `db:"export_arrival_time" json:"exportArrivalTime,omitempty"`
	ExportOperationTime string         `db:"export_operation_time" json:"exportOperationTime,omitempty"`
	ExportPlannedWeight float64        `db:"export_planned_weight" json:"exportPlannedWeight,omitempty"`
	ExportNotifiedDepts pq.StringArray `db:"export_notified_depts" json:"exportNotifiedDepts,omitempty"`
	CreatedAt           time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updatedAt"`
}

// Container is a single shipping container or road vehicle on a vessel call.
// CustomsPkgs and CustomsWeight are nil until customs paperwork exists.
// CustomsPkgs keeps the declared figure unrounded.
type Container struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	VesselID          uuid.UUID       `db:"vessel_id" json:"vesselId"`
	UnitType          UnitType        `db:"unit_type" json:"unitType"`
	ContainerNo       string          `db:"container_no" json:"containerNo"`
	Size              string          `db:"size" json:"size"`
	SealNo            string          `db:"seal_no" json:"sealNo"`
	Carrier           string          `db:"carrier" json:"carrier"`
	Pkgs              int             `db:"pkgs" json:"pkgs"`
	Weight            float64         `db:"weight" json:"weight"`
	CustomsPkgs       *float64        `db:"customs_pkgs" json:"customsPkgs,omitempty"`
	CustomsWeight     *float64        `db:"customs_weight" json:"customsWeight,omitempty"`
	BillNo            string          `db:"bill_no" json:"billNo"`
	Vendor            string          `db:"vendor" json:"vendor"`
	DetExpiry         string          `db:"det_expiry" json:"detExpiry"`
	TkNhaVC           string          `db:"tk_nha_vc" json:"tkNhaVC,omitempty"`
	NgayTkNhaVC       string          `db:"ngay_tk_nha_vc" json:"ngayTkNhaVC,omitempty"`
	TkDnlOla          string          `db:"tk_dnl_ola" json:"tkDnlOla,omitempty"`
	NgayTkDnl         string          `db:"ngay_tk_dnl" json:"ngayTkDnl,omitempty"`
	NgayKeHoach       string          `db:"ngay_ke_hoach" json:"ngayKeHoach,omitempty"`
	NoiHaRong         string          `db:"noi_ha_rong" json:"noiHaRong,omitempty"`
	Status            ContainerStatus `db:"status" json:"status"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
	TallyApproved     bool            `db:"tally_approved" json:"tallyApproved"`
	WorkOrderApproved bool            `db:"work_order_approved" json:"workOrderApproved"`
	Remarks           string          `db:"remarks" json:"remarks,omitempty"`
	LastUrgedAt       *time.Time      `db:"last_urged_at" json:"lastUrgedAt,omitempty"`
}

// FullyDocumented reports whether both customs declaration references are present.
func (c *Container) FullyDocumented() bool {
	return c.TkNhaVC != "" && c.TkDnlOla != ""
}

// ServicePrice is a billable tariff row.
type ServicePrice struct {
	ID           string        `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Unit         string        `db:"unit" json:"unit"`
	Price        float64       `db:"price" json:"price"`
	Category     PriceCategory `db:"category" json:"category"`
	Group        PriceGroup    `db:"price_group" json:"group"`
	SubGroup     PriceSubGroup `db:"sub_group" json:"subGroup,omitempty"`
	BusinessType BusinessType  `db:"business_type" json:"businessType,omitempty"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

// DetentionConfig holds the day thresholds for detention urgency tiers.
// UrgentDays is expected to be <= WarningDays but this is not enforced.
type DetentionConfig struct {
	UrgentDays  int `json:"urgentDays"`
	WarningDays int `json:"warningDays"`
}

// DefaultDetentionConfig is used when no thresholds are configured.
var DefaultDetentionConfig = DetentionConfig{UrgentDays: 2, WarningDays: 5}

// VesselTotals are the aggregate quantities a debit note is charged on.
type VesselTotals struct {
	TotalWeight    float64 `json:"totalWeight"`
	ContainerCount int     `json:"containerCount"`
}

// ImportSummary is the recomputed aggregate of a vessel's container set.
type ImportSummary struct {
	TotalContainers int     `json:"totalContainers"`
	TotalPkgs       int     `json:"totalPkgs"`
	TotalWeight     float64 `json:"totalWeight"`
	SkippedRows     int     `json:"skippedRows"`
}

// ContainerView is a container decorated with read-time overlays.
type ContainerView struct {
	Container
	EffectiveStatus ContainerStatus `json:"effectiveStatus"`
	Detention       DetentionTier   `json:"detention"`
}

// DeclarationWarnings lists containers that need declaration follow-up.
type DeclarationWarnings struct {
	Mismatches          []Container `json:"mismatches"`
	PendingDeclarations []Container `json:"pendingDeclarations"`
}

// Quantity is a package count paired with its tonnage.
type Quantity struct {
	Pkgs   int     `json:"pkgs"`
	Weight float64 `json:"weight"`
}

// PeriodRollup is the opening/inbound/outbound/closing balance for a vessel-month.
type PeriodRollup struct {
	Month             int         `json:"month"`
	Year              int         `json:"year"`
	WeightFactor      float64     `json:"weightFactor"`
	Opening           Quantity    `json:"opening"`
	Inbound           Quantity    `json:"inbound"`
	Outbound          Quantity    `json:"outbound"`
	Closing           Quantity    `json:"closing"`
	InboundContainers []Container `json:"inboundContainers"`
}

// ServiceLine is one fixed line item of a debit note.
type ServiceLine struct {
	TariffID string        `json:"tariffId"`
	Name     string        `json:"name"`
	Category PriceCategory `json:"category"`
	Unit     string        `json:"unit"`
}

// DebitRow is a computed debit note line.
type DebitRow struct {
	No              int     `json:"stt"`
	Service         string  `json:"service"`
	Quantity        float64 `json:"qty"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"price"`
	AmountBeforeVAT int64   `json:"amountBeforeVat"`
	VAT             int64   `json:"vat"`
	Total           int64   `json:"total"`
}

// DebitNote is the full billing table for a vessel call.
type DebitNote struct {
	VesselID        uuid.UUID    `json:"vesselId"`
	VesselName      string       `json:"vesselName"`
	Totals          VesselTotals `json:"totals"`
	VATRate         float64      `json:"vatRate"`
	Rows            []DebitRow   `json:"rows"`
	AmountBeforeVAT int64        `json:"amountBeforeVat"`
	VAT             int64        `json:"vat"`
	Total           int64        `json:"total"`
}

// OperationsStats are the headline counts for the operations dashboard.
type OperationsStats struct {
	Vessels         int `json:"vessels"`
	Total           int `json:"total"`
	Pending         int `json:"pending"`
	Ready           int `json:"ready"`
	InProgress      int `json:"inProgress"`
	Completed       int `json:"completed"`
	Mismatched      int `json:"mismatched"`
	UrgentDetention int `json:"urgentDetention"`
}

// InventoryReport is a vessel's rollup for one calendar month.
type InventoryReport struct {
	Vessel Vessel       `json:"vessel"`
	Rollup PeriodRollup `json:"rollup"`
}

// ArchivedReport points at a rendered report in object storage.
type ArchivedReport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
