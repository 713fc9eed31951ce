package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"desexport/internal/des"
	"desexport/pkg/models"
)

// PrintSummary writes the layered console report: one table per month in
// chronological order, then the global recap (per-country totals, full
// client roster, grand total). Per-month tables are aggregated from the
// already-fetched month slices through the same aggregator as the
// full-range pass, so the grand total (the sum of month subtotals) always
// reconciles with the full aggregation.
func PrintSummary(ctx context.Context, w io.Writer, agg *des.Aggregator, months []des.Month, byMonth map[des.Month][]models.Invoice, full *des.Aggregation) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	if len(months) == 1 {
		fmt.Fprintf(w, "  EXPORT DES - %s\n", months[0])
	} else {
		fmt.Fprintf(w, "  EXPORT DES - %s → %s\n", months[0], months[len(months)-1])
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))

	var grandTotalCents int64
	for _, m := range months {
		monthAgg := agg.Aggregate(ctx, byMonth[m])
		grandTotalCents += printMonth(w, m, monthAgg)
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(w, "  RÉCAPITULATIF GLOBAL")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if full.Len() == 0 {
		fmt.Fprintln(w, "\n  Aucun client intra-UE trouvé sur la période.")
		return
	}

	printCountryTotals(w, full, grandTotalCents)
	printRoster(w, full)

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(w, "  TOTAL GÉNÉRAL: %s€\n", FormatEuros(grandTotalCents))
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 60))
}

// printMonth renders one month's client table and returns its subtotal in
// cents.
func printMonth(w io.Writer, m des.Month, ag *des.Aggregation) int64 {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("─", 70))
	fmt.Fprintf(w, "  %s\n", m)
	fmt.Fprintln(w, strings.Repeat("─", 70))

	if ag.Len() == 0 {
		fmt.Fprintln(w, "  Aucun client intra-UE trouvé.")
		return 0
	}

	fmt.Fprintf(w, "  %-6s %-28s %-18s %12s\n", "Pays", "Client", "TVA", "Montant HT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 66))

	var totalCents int64
	for _, rec := range ag.DisplayOrder() {
		fmt.Fprintf(w, "  %-6s %-28s %-18s %11s€\n",
			rec.CountryCode,
			truncate(rec.Name, 28),
			truncate(vatOrDash(rec.VATNumber), 18),
			FormatEuros(rec.TotalCents))
		totalCents += rec.TotalCents
	}

	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 66))
	fmt.Fprintf(w, "  %-6s %d client(s)%s%11s€\n",
		"TOTAL", ag.Len(), strings.Repeat(" ", 26), FormatEuros(totalCents))

	return totalCents
}

// printCountryTotals renders client counts and summed amounts grouped by
// country code, ascending.
func printCountryTotals(w io.Writer, full *des.Aggregation, grandTotalCents int64) {
	type countryTotal struct {
		clients int
		cents   int64
	}
	byCountry := make(map[string]*countryTotal)
	for _, rec := range full.Records() {
		ct, ok := byCountry[rec.CountryCode]
		if !ok {
			ct = &countryTotal{}
			byCountry[rec.CountryCode] = ct
		}
		ct.clients++
		ct.cents += rec.TotalCents
	}

	codes := make([]string, 0, len(byCountry))
	for code := range byCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Fprintln(w, "\n  📊 TOTAUX PAR PAYS")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 50))
	fmt.Fprintf(w, "  %-20s %8s %18s\n", "Pays", "Clients", "Montant HT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 50))
	for _, code := range codes {
		name, _ := des.CountryName(code)
		ct := byCountry[code]
		fmt.Fprintf(w, "  %-20s %8d %17s€\n", name, ct.clients, FormatEuros(ct.cents))
	}
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 50))
	fmt.Fprintf(w, "  %-20s %8d %17s€\n", "TOTAL", full.Len(), FormatEuros(grandTotalCents))
}

// printRoster renders the full client list from the full-range aggregation.
func printRoster(w io.Writer, full *des.Aggregation) {
	fmt.Fprintf(w, "\n  👥 LISTE DES CLIENTS (%d)\n", full.Len())
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 70))
	fmt.Fprintf(w, "  %-12s %-25s %-18s %12s\n", "Pays", "Client", "TVA", "Montant HT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 70))

	for _, rec := range full.DisplayOrder() {
		fmt.Fprintf(w, "  %-12s %-25s %-18s %11s€\n",
			rec.CountryCode,
			truncate(rec.Name, 25),
			truncate(vatOrDash(rec.VATNumber), 18),
			FormatEuros(rec.TotalCents))
	}

	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 70))
}

// truncate caps s at max display runes, replacing the overflow with "..".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-2]) + ".."
}

func vatOrDash(vat *string) string {
	if vat == nil || *vat == "" {
		return "-"
	}
	return *vat
}
