// Package report renders aggregated DES data: a ;-delimited CSV export and
// a layered console summary (per-month tables, per-country totals, client
// roster, grand total).
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"desexport/internal/des"
)

// csvHeader is the fixed export header expected by the accountants'
// tooling; do not reorder or translate.
var csvHeader = []string{
	"Code Pays",
	"Pays",
	"Numéro TVA",
	"Nom Client",
	"Email",
	"Montant HT (EUR)",
	"Nb Factures",
}

// FormatEuros renders a cents amount as euros with exactly two decimals and
// no thousands separator, e.g. 123456 -> "1234.56". Totals are
// non-negative by construction.
func FormatEuros(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// ExportCSV writes the aggregation to a UTF-8, ;-delimited file, one row
// per client sorted by country code, creating missing directories along
// the destination path.
func ExportCSV(ag *des.Aggregation, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, rec := range ag.ExportOrder() {
		vat := ""
		if rec.VATNumber != nil {
			vat = *rec.VATNumber
		}
		row := []string{
			rec.CountryCode,
			rec.CountryName,
			vat,
			rec.Name,
			rec.Email,
			FormatEuros(rec.TotalCents),
			strconv.Itoa(rec.InvoiceCount),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing export: %w", err)
	}
	return f.Close()
}
