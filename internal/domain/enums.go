package domain

// UnitType distinguishes shipping containers from road vehicles (flatbed trucks).
type UnitType string

const (
	UnitTypeContainer UnitType = "CONTAINER"
	UnitTypeVehicle   UnitType = "VEHICLE"
)

// Valid reports whether u is a known unit type.
func (u UnitType) Valid() bool {
	return u == UnitTypeContainer || u == UnitTypeVehicle
}

// ContainerStatus represents the lifecycle of a container within a vessel call.
type ContainerStatus string

const (
	ContainerStatusPending    ContainerStatus = "PENDING"
	ContainerStatusReady      ContainerStatus = "READY"
	ContainerStatusInProgress ContainerStatus = "IN_PROGRESS"
	ContainerStatusCompleted  ContainerStatus = "COMPLETED"
	ContainerStatusResidual   ContainerStatus = "RESIDUAL"
	ContainerStatusIssue      ContainerStatus = "ISSUE"
	ContainerStatusUrgent     ContainerStatus = "URGENT"
	ContainerStatusMismatch   ContainerStatus = "MISMATCH"
)

// Valid reports whether s is a known container status.
func (s ContainerStatus) Valid() bool {
	switch s {
	case ContainerStatusPending, ContainerStatusReady, ContainerStatusInProgress, ContainerStatusCompleted,
		ContainerStatusResidual, ContainerStatusIssue, ContainerStatusUrgent, ContainerStatusMismatch:
		return true
	}
	return false
}

// BusinessType separates import (discharge) from export (loading) operations.
type BusinessType string

const (
	BusinessTypeImport BusinessType = "IMPORT"
	BusinessTypeExport BusinessType = "EXPORT"
)

// PriceCategory is the quantity basis a tariff is charged on.
type PriceCategory string

const (
	// PriceCategoryWeight is charged per tonne.
	PriceCategoryWeight PriceCategory = "WEIGHT"
	// PriceCategoryUnit is charged per container, per shift or per piece.
	PriceCategoryUnit PriceCategory = "UNIT"
)

// PriceGroup groups tariffs on the pricing screen.
type PriceGroup string

const (
	PriceGroupGeneral PriceGroup = "GENERAL"
	PriceGroupMethod  PriceGroup = "METHOD"
)

// PriceSubGroup is the executing team for a METHOD tariff.
type PriceSubGroup string

const (
	PriceSubGroupLabor      PriceSubGroup = "LABOR"
	PriceSubGroupMechanical PriceSubGroup = "MECHANICAL"
)

// DebitStatus is the payment state of a vessel's debit note.
type DebitStatus string

const (
	DebitStatusPaid   DebitStatus = "PAID"
	DebitStatusUnpaid DebitStatus = "UNPAID"
)

func (s DebitStatus) Valid() bool {
	return s == DebitStatusPaid || s == DebitStatusUnpaid
}

// DetentionTier classifies how close a container is to its detention deadline.
type DetentionTier string

const (
	DetentionUrgent  DetentionTier = "urgent"
	DetentionWarning DetentionTier = "warning"
	DetentionSafe    DetentionTier = "safe"
)

// AdjustmentType is the kind of batch price adjustment.
type AdjustmentType string

const (
	AdjustmentPercent AdjustmentType = "PERCENT"
	AdjustmentFixed   AdjustmentType = "FIXED"
)

// Department names used for export plan notifications.
const (
	DepartmentTransport = "Transport"
	DepartmentDepot     = "Depot"
	DepartmentInspector = "Inspector"
)

// WeightFactorTariffID is the reserved tariff id holding the tonnes-per-package factor.
const WeightFactorTariffID = "weight-factor"
