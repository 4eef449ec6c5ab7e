package reconcile

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portops/internal/domain"
)

// Defaults are applied when neither the import row nor the existing record
// supplies a value.
type Defaults struct {
	Pkgs              int
	Weight            float64
	ContainerSize     string
	VehicleSize       string
	Depot             string
	Carrier           string
	DetentionFreeDays int
}

// DefaultImportDefaults mirrors the paper-pulp cargo profile the depot handles most.
var DefaultImportDefaults = Defaults{
	Pkgs:              16,
	Weight:            28.8,
	ContainerSize:     "40'HC",
	VehicleSize:       "Xe thớt",
	Depot:             "TIEN SA",
	Carrier:           "N/A",
	DetentionFreeDays: 7,
}

// ImportResult is the complete replacement container set for one vessel.
type ImportResult struct {
	Containers []domain.Container  `json:"containers"`
	Summary    domain.ImportSummary `json:"summary"`
}

// Reconciler merges imported rows into a vessel's existing container set.
type Reconciler struct {
	defaults Defaults
}

// NewReconciler creates a Reconciler. Zero-valued fields of d fall back to
// DefaultImportDefaults.
func NewReconciler(d Defaults) *Reconciler {
	def := DefaultImportDefaults
	if d.Pkgs > 0 {
		def.Pkgs = d.Pkgs
	}
	if d.Weight > 0 {
		def.Weight = d.Weight
	}
	if d.ContainerSize != "" {
		def.ContainerSize = d.ContainerSize
	}
	if d.VehicleSize != "" {
		def.VehicleSize = d.VehicleSize
	}
	if d.Depot != "" {
		def.Depot = d.Depot
	}
	if d.Carrier != "" {
		def.Carrier = d.Carrier
	}
	if d.DetentionFreeDays > 0 {
		def.DetentionFreeDays = d.DetentionFreeDays
	}
	return &Reconciler{defaults: def}
}

// Reconcile merges rows into the containers of vesselID found in existing
// (which may span all vessels) and returns the vessel's new container set.
// Rows without a container number are skipped. A later row for the same
// container number wins. COMPLETED containers stay COMPLETED; everything else
// becomes READY when both declaration numbers are present, PENDING otherwise.
func (r *Reconciler) Reconcile(rows []RawRow, vesselID uuid.UUID, existing []domain.Container, now time.Time) (*ImportResult, error) {
	if vesselID == uuid.Nil {
		return nil, domain.ErrInvalidVessel
	}

	set := newContainerSet()
	for i := range existing {
		if existing[i].VesselID == vesselID {
			set.put(existing[i])
		}
	}

	skipped := 0
	for _, row := range rows {
		containerNo := row.String("containerNo")
		if containerNo == "" {
			skipped++
			continue
		}
		prev, _ := set.get(containerNo)
		set.put(r.merge(row, containerNo, vesselID, prev, now))
	}

	containers := set.values()
	summary := Summarize(containers)
	summary.SkippedRows = skipped
	return &ImportResult{Containers: containers, Summary: summary}, nil
}

func (r *Reconciler) merge(row RawRow, containerNo string, vesselID uuid.UUID, prev *domain.Container, now time.Time) domain.Container {
	// old is the zero Container for a first sighting, so fallbacks below
	// degrade to the configured defaults.
	var old domain.Container
	c := domain.Container{ID: ContainerID(vesselID, containerNo)}
	if prev != nil {
		old = *prev
		c = *prev
		c.CustomsPkgs = cloneFloat(prev.CustomsPkgs)
		c.CustomsWeight = cloneFloat(prev.CustomsWeight)
		c.LastUrgedAt = cloneTime(prev.LastUrgedAt)
	}

	c.VesselID = vesselID
	c.ContainerNo = containerNo
	c.UnitType = r.unitType(row, prev, containerNo)

	defaultSize := r.defaults.ContainerSize
	if c.UnitType == domain.UnitTypeVehicle {
		defaultSize = r.defaults.VehicleSize
	}
	c.Size = pick(row.String("size"), old.Size, defaultSize)
	c.SealNo = pick(row.String("sealNo"), old.SealNo)
	c.Carrier = pick(row.String("carrier"), old.Carrier, r.defaults.Carrier)
	c.BillNo = pick(row.String("billNo"), old.BillNo)
	c.Vendor = pick(row.String("vendor"), old.Vendor)
	c.Remarks = pick(row.String("remarks"), old.Remarks)
	c.NoiHaRong = pick(row.String("noiHaRong"), old.NoiHaRong, r.defaults.Depot)
	c.TkNhaVC = pick(row.String("tkNhaVC", "toKhai"), old.TkNhaVC)
	c.TkDnlOla = pick(row.String("tkDnlOla"), old.TkDnlOla)

	c.Pkgs = r.defaults.Pkgs
	if v, ok := row.Number("pkgs"); ok && v > 0 {
		c.Pkgs = int(math.Round(v))
	} else if old.Pkgs > 0 {
		c.Pkgs = old.Pkgs
	}

	c.Weight = r.defaults.Weight
	if v, ok := row.Number("weight"); ok && v > 0 {
		c.Weight = v
	} else if old.Weight > 0 {
		c.Weight = old.Weight
	}

	// Customs quantities: a parseable value overrides, anything else keeps what we had.
	if v, ok := row.Number("customsPkgs"); ok {
		c.CustomsPkgs = &v
	}
	if v, ok := row.Number("customsWeight"); ok {
		c.CustomsWeight = &v
	}

	c.DetExpiry = pickDate(
		row.String("detExpiry"),
		old.DetExpiry,
		now.AddDate(0, 0, r.defaults.DetentionFreeDays).Format(DateLayout),
	)
	c.NgayTkNhaVC = pickDate(row.String("ngayTkNhaVC"), old.NgayTkNhaVC)
	c.NgayTkDnl = pickDate(row.String("ngayTkDnl"), old.NgayTkDnl)
	c.NgayKeHoach = pickDate(row.String("ngayKeHoach", "dayOfLoading"), old.NgayKeHoach, now.Format(DateLayout))

	switch {
	case old.Status == domain.ContainerStatusCompleted:
		c.Status = domain.ContainerStatusCompleted
	case c.FullyDocumented():
		c.Status = domain.ContainerStatusReady
	default:
		c.Status = domain.ContainerStatusPending
	}

	c.UpdatedAt = now
	return c
}

func (r *Reconciler) unitType(row RawRow, prev *domain.Container, containerNo string) domain.UnitType {
	if u := domain.UnitType(strings.ToUpper(row.String("unitType"))); u.Valid() {
		return u
	}
	if prev != nil && prev.UnitType.Valid() {
		return prev.UnitType
	}
	return ClassifyUnit(containerNo)
}

// ContainerID derives a stable id for a container number on a vessel, so
// importing the same manifest twice yields the same ids.
func ContainerID(vesselID uuid.UUID, containerNo string) uuid.UUID {
	return uuid.NewSHA1(vesselID, []byte(containerNo))
}

// Summarize recomputes vessel totals over a container set.
func Summarize(containers []domain.Container) domain.ImportSummary {
	pkgs := 0
	weight := decimal.Zero
	for i := range containers {
		pkgs += containers[i].Pkgs
		weight = weight.Add(decimal.NewFromFloat(containers[i].Weight))
	}
	return domain.ImportSummary{
		TotalContainers: len(containers),
		TotalPkgs:       pkgs,
		TotalWeight:     weight.InexactFloat64(),
	}
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// pickDate returns the first candidate that normalizes to a valid date.
func pickDate(values ...string) string {
	for _, v := range values {
		if n := NormalizeDate(v); n != "" {
			return n
		}
	}
	return ""
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// containerSet is an insertion-ordered map keyed by container number.
type containerSet struct {
	order []string
	byNo  map[string]domain.Container
}

func newContainerSet() *containerSet {
	return &containerSet{byNo: make(map[string]domain.Container)}
}

func (s *containerSet) get(containerNo string) (*domain.Container, bool) {
	c, ok := s.byNo[containerNo]
	if !ok {
		return nil, false
	}
	return &c, true
}

func (s *containerSet) put(c domain.Container) {
	if _, ok := s.byNo[c.ContainerNo]; !ok {
		s.order = append(s.order, c.ContainerNo)
	}
	s.byNo[c.ContainerNo] = c
}

func (s *containerSet) values() []domain.Container {
	out := make([]domain.Container, 0, len(s.order))
	for _, no := range s.order {
		out = append(out, s.byNo[no])
	}
	return out
}
