// Package xlsxreport renders reports as Excel workbooks.
package xlsxreport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"portops/internal/csvexport"
	"portops/internal/domain"
	"portops/internal/reconcile"
)

// InventorySheet is the name of the single worksheet in an inventory workbook.
const InventorySheet = "Inventory"

// ContentType is the MIME type of rendered workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	lastColumn  = "H"
	labelTotal  = "Cộng"
	qtyHeader   = "Số lượng (kiện)"
	tonHeader   = "Khối lượng (tấn)"
	wholeLotOut = "XUẤT NGUYÊN LÔ"
)

var columnHeaders = []interface{}{
	"STT", "Diễn giải", "Tàu", "Ngày nhập kho", "Ngày xuất kho", "Số cont/ XE", qtyHeader, tonHeader,
}

// InventoryOptions carries the presentation details that are not part of the rollup.
type InventoryOptions struct {
	// Company is printed above the title when set.
	Company   string
	PrintedAt time.Time
}

type sheetWriter struct {
	f     *excelize.File
	row   int
	bold  int
	tons  int
	title int
}

// BuildInventory renders the report as a workbook with four sections:
// I opening balance, II inbound detail, III outbound, IV closing balance.
// The caller owns the returned file and must Close it.
func BuildInventory(report *domain.InventoryReport, opts InventoryOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("xlsxreport: rename sheet: %w", err)
	}

	w, err := newSheetWriter(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, err
	}
	if err := w.writeInventory(report, opts); err != nil {
		f.Close() //nolint:errcheck
		return nil, err
	}
	return f, nil
}

// WriteInventory renders the report and writes the workbook to out.
func WriteInventory(out io.Writer, report *domain.InventoryReport, opts InventoryOptions) error {
	f, err := BuildInventory(report, opts)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if err := f.Write(out); err != nil {
		return fmt.Errorf("xlsxreport: write workbook: %w", err)
	}
	return nil
}

// InventoryFilename returns the download name for a vessel's monthly inventory.
func InventoryFilename(vesselName string, month, year int) string {
	return fmt.Sprintf("inventory_%s_%04d-%02d.xlsx", csvexport.SanitizeFilename(vesselName), year, month)
}

func newSheetWriter(f *excelize.File) (*sheetWriter, error) {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsxreport: bold style: %w", err)
	}
	tonsFmt := "0.0"
	tons, err := f.NewStyle(&excelize.Style{CustomNumFmt: &tonsFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsxreport: tonnage style: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsxreport: title style: %w", err)
	}
	return &sheetWriter{f: f, bold: bold, tons: tons, title: title}, nil
}

func (w *sheetWriter) writeInventory(report *domain.InventoryReport, opts InventoryOptions) error {
	r := &report.Rollup
	vessel := report.Vessel.VesselName
	commodity := report.Vessel.Commodity

	if opts.Company != "" {
		if err := w.line(opts.Company); err != nil {
			return err
		}
		w.blank()
	}

	titleRow := w.row + 1
	if err := w.line(fmt.Sprintf("BẢNG KÊ NHẬP XUẤT KHO THÁNG %d/%d", r.Month, r.Year)); err != nil {
		return err
	}
	if err := w.mergeRow(titleRow, w.title); err != nil {
		return err
	}
	if err := w.line(fmt.Sprintf("Mặt hàng: %s - Nhập và xuất tàu %s", commodity, vessel)); err != nil {
		return err
	}
	w.blank()

	if err := w.boldLine(columnHeaders...); err != nil {
		return err
	}

	// I
	if err := w.boldLine("I", "Tồn đầu", "", "", "", "", r.Opening.Pkgs, r.Opening.Weight); err != nil {
		return err
	}
	if err := w.total(r.Opening); err != nil {
		return err
	}

	// II
	if err := w.boldLine("II", "Nhập kho trong kỳ", "Tàu", "Ngày nhập kho", "Ngày xuất kho", "Số cont/ XE", qtyHeader, tonHeader); err != nil {
		return err
	}
	for i := range r.InboundContainers {
		c := &r.InboundContainers[i]
		if err := w.line(
			i+1, commodity, vessel, c.UpdatedAt.UTC().Format("2006-01-02"), "", c.ContainerNo,
			c.Pkgs, reconcile.Tonnage(c.Pkgs, r.WeightFactor),
		); err != nil {
			return err
		}
	}
	if err := w.total(r.Inbound); err != nil {
		return err
	}

	// III
	if err := w.boldLine("III", "Xuất kho trong kỳ", "", "", "", "", qtyHeader, tonHeader); err != nil {
		return err
	}
	if err := w.line(1, commodity, vessel, "", "", wholeLotOut, r.Outbound.Pkgs, r.Outbound.Weight); err != nil {
		return err
	}
	if err := w.total(r.Outbound); err != nil {
		return err
	}

	// IV
	if err := w.boldLine("IV", "Tồn cuối", "", "", "", "", qtyHeader, tonHeader); err != nil {
		return err
	}
	if err := w.line(1, commodity, vessel, "", "", "", r.Closing.Pkgs, r.Closing.Weight); err != nil {
		return err
	}
	if err := w.total(r.Closing); err != nil {
		return err
	}

	if !opts.PrintedAt.IsZero() {
		w.blank()
		d := opts.PrintedAt
		if err := w.line("", "", "", "", "", "", fmt.Sprintf("Ngày %d tháng %d năm %d", d.Day(), int(d.Month()), d.Year())); err != nil {
			return err
		}
	}

	if err := w.f.SetCellStyle(InventorySheet, "H1", fmt.Sprintf("H%d", w.row), w.tons); err != nil {
		return fmt.Errorf("xlsxreport: tonnage column: %w", err)
	}
	if err := w.f.SetColWidth(InventorySheet, "A", lastColumn, 16); err != nil {
		return fmt.Errorf("xlsxreport: column width: %w", err)
	}
	return nil
}

func (w *sheetWriter) line(values ...interface{}) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return fmt.Errorf("xlsxreport: row %d: %w", w.row, err)
	}
	if err := w.f.SetSheetRow(InventorySheet, cell, &values); err != nil {
		return fmt.Errorf("xlsxreport: row %d: %w", w.row, err)
	}
	return nil
}

func (w *sheetWriter) boldLine(values ...interface{}) error {
	if err := w.line(values...); err != nil {
		return err
	}
	return w.styleRow(w.row, w.bold)
}

func (w *sheetWriter) total(q domain.Quantity) error {
	return w.boldLine("", labelTotal, "", "", "", "", q.Pkgs, q.Weight)
}

func (w *sheetWriter) blank() {
	w.row++
}

func (w *sheetWriter) styleRow(row, style int) error {
	if err := w.f.SetCellStyle(InventorySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastColumn, row), style); err != nil {
		return fmt.Errorf("xlsxreport: style row %d: %w", row, err)
	}
	return nil
}

func (w *sheetWriter) mergeRow(row, style int) error {
	if err := w.f.MergeCell(InventorySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastColumn, row)); err != nil {
		return fmt.Errorf("xlsxreport: merge row %d: %w", row, err)
	}
	return w.styleRow(row, style)
}
