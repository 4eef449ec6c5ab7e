package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"portops/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// ContentType is the MIME type of exported files.
const ContentType = "text/csv; charset=utf-8"

// columns defines the debit note header row.
var columns = []string{
	"STT",
	"Dịch vụ",
	"Số lượng",
	"ĐVT",
	"Đơn giá",
	"Thành tiền",
	"VAT",
	"Tổng cộng",
}

// Writer wraps csv.Writer for exporting debit notes as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows writes one CSV row per debit line.
func (w *Writer) WriteRows(rows []domain.DebitRow) error {
	for i := range rows {
		if err := w.csv.Write(debitRowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotal writes the grand total row of the note.
func (w *Writer) WriteTotal(note *domain.DebitNote) error {
	row := make([]string, len(columns))
	row[1] = "Tổng cộng"
	row[5] = formatMoney(note.AmountBeforeVAT)
	row[6] = formatMoney(note.VAT)
	row[7] = formatMoney(note.Total)
	return w.csv.Write(row)
}

// WriteDebitNote writes the BOM, header, lines and total of a debit note, then flushes.
func WriteDebitNote(out io.Writer, note *domain.DebitNote) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRows(note.Rows); err != nil {
		return err
	}
	if err := w.WriteTotal(note); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func debitRowToRecord(r *domain.DebitRow) []string {
	return []string{
		strconv.Itoa(r.No),
		r.Service,
		formatQuantity(r.Quantity),
		r.Unit,
		formatQuantity(r.UnitPrice),
		formatMoney(r.AmountBeforeVAT),
		formatMoney(r.VAT),
		formatMoney(r.Total),
	}
}

// formatQuantity drops trailing zeros so whole counts print without decimals.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(v int64) string {
	return strconv.FormatInt(v, 10)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a vessel name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "vessel"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: debit_{sanitized_vessel_name}_{YYYY-MM-DD}.csv
func BuildFilename(vesselName string, date time.Time) string {
	return fmt.Sprintf("debit_%s_%s.csv", SanitizeFilename(vesselName), date.Format("2006-01-02"))
}
