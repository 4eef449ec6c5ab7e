package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/reconcile"
	"portops/internal/xlsxreport"
)

// ReportConfig holds the billing and rendering settings of the report service.
type ReportConfig struct {
	VATRate       float64
	WeightFactor  float64
	Company       string
	PresignExpiry time.Duration
}

// ReportService provides the per-vessel inventory and billing reports.
type ReportService interface {
	Inventory(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.InventoryReport, error)
	RenderInventory(ctx context.Context, vesselID uuid.UUID, month, year int, out io.Writer) (*domain.InventoryReport, error)
	ArchiveInventory(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.ArchivedReport, error)
	DebitNote(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.DebitNote, error)
}

type reportService struct {
	vessels    port.VesselRepository
	containers port.ContainerRepository
	tariffs    port.TariffRepository
	storage    port.ObjectStorage
	cfg        ReportConfig
	now        Clock
}

// NewReportService creates a new ReportService implementation. storage may be
// nil, in which case archiving reports ErrStorageUnavailable.
func NewReportService(
	vessels port.VesselRepository,
	containers port.ContainerRepository,
	tariffs port.TariffRepository,
	storage port.ObjectStorage,
	cfg ReportConfig,
	clock Clock,
) ReportService {
	if cfg.WeightFactor <= 0 {
		cfg.WeightFactor = reconcile.DefaultWeightFactor
	}
	// Same fallback as the S3 client.
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = time.Hour
	}
	return &reportService{
		vessels:    vessels,
		containers: containers,
		tariffs:    tariffs,
		storage:    storage,
		cfg:        cfg,
		now:        clockOrSystem(clock),
	}
}

// Inventory computes the vessel's rollup for a month. A zero month or year
// means the current one.
func (s *reportService) Inventory(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.InventoryReport, error) {
	period, err := s.resolvePeriod(month, year)
	if err != nil {
		return nil, err
	}

	vessel, err := s.vessels.GetByID(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	containers, err := s.containers.ListByVessel(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	tariffs, err := s.tariffs.List(ctx)
	if err != nil {
		return nil, err
	}

	factor := reconcile.WeightFactor(reconcile.IndexTariffs(tariffs), s.cfg.WeightFactor)
	rollup, err := reconcile.ComputePeriodRollup(containers, int(period.Month()), period.Year(), factor)
	if err != nil {
		return nil, err
	}
	return &domain.InventoryReport{Vessel: *vessel, Rollup: *rollup}, nil
}

func (s *reportService) RenderInventory(ctx context.Context, vesselID uuid.UUID, month, year int, out io.Writer) (*domain.InventoryReport, error) {
	report, err := s.Inventory(ctx, vesselID, month, year)
	if err != nil {
		return nil, err
	}
	opts := xlsxreport.InventoryOptions{Company: s.cfg.Company, PrintedAt: s.now()}
	if err := xlsxreport.WriteInventory(out, report, opts); err != nil {
		return nil, err
	}
	return report, nil
}

// ArchiveInventory renders the workbook, stores it under
// reports/<vesselID>/inventory-YYYY-MM.xlsx and returns a presigned link.
// Re-archiving the same month overwrites the object.
func (s *reportService) ArchiveInventory(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.ArchivedReport, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}

	var buf bytes.Buffer
	report, err := s.RenderInventory(ctx, vesselID, month, year, &buf)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s/inventory-%04d-%02d.xlsx", vesselID, report.Rollup.Year, report.Rollup.Month)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        &buf,
		ContentType: xlsxreport.ContentType,
	})
	if err != nil {
		log.Printf("reportService: upload %s failed: %v", key, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	now := s.now()
	url, err := s.storage.GetPresignedURL(ctx, key)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("reportService: cleanup of %s failed: %v", key, delErr)
		}
		return nil, fmt.Errorf("reportService.ArchiveInventory presign: %w", err)
	}

	log.Printf("reportService: archived inventory for vessel %s at %s", vesselID, key)
	return &domain.ArchivedReport{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.cfg.PresignExpiry),
	}, nil
}

// DebitNote prices the vessel's containers against the current tariffs. A zero
// month or year bills the current month.
func (s *reportService) DebitNote(ctx context.Context, vesselID uuid.UUID, month, year int) (*domain.DebitNote, error) {
	billing, err := s.resolvePeriod(month, year)
	if err != nil {
		return nil, err
	}

	vessel, err := s.vessels.GetByID(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	containers, err := s.containers.ListByVessel(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	tariffs, err := s.tariffs.List(ctx)
	if err != nil {
		return nil, err
	}

	lines := reconcile.DefaultServiceLines(vessel.VesselName, vessel.VoyageNo, billing)
	note := reconcile.ComputeDebitRows(
		reconcile.TotalsFromContainers(containers),
		reconcile.IndexTariffs(tariffs),
		lines,
		s.cfg.VATRate,
	)
	note.VesselID = vessel.ID
	note.VesselName = vessel.VesselName
	return &note, nil
}

// resolvePeriod returns the first instant of the requested month in UTC.
func (s *reportService) resolvePeriod(month, year int) (time.Time, error) {
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, fmt.Errorf("%w: %d/%d", domain.ErrInvalidPeriod, month, year)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}
