package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desexport/internal/des"
	"desexport/pkg/models"
)

func TestPrintSummary(t *testing.T) {
	ctx := context.Background()

	march := des.Month{Year: 2024, Month: time.March}
	july := des.Month{Year: 2024, Month: time.July}
	months := []des.Month{march, july}

	byMonth := map[des.Month][]models.Invoice{
		march: {
			fixtureInvoice("in_1", "cus_es", "Tienda SL", "ES", 2000),
			fixtureInvoice("in_2", "cus_fr", "Maison SARL", "FR", 9000),
		},
		july: {
			fixtureInvoice("in_3", "cus_es", "Tienda SL", "ES", 3000),
			fixtureInvoice("in_4", "cus_de", "Acme GmbH", "DE", 10000),
		},
	}

	agg, full := aggregate(t, nil, append(append([]models.Invoice{}, byMonth[march]...), byMonth[july]...))

	var buf bytes.Buffer
	PrintSummary(ctx, &buf, agg, months, byMonth, full)
	out := buf.String()

	assert.Contains(t, out, "EXPORT DES - 03/2024 → 07/2024")
	assert.Contains(t, out, "RÉCAPITULATIF GLOBAL")
	assert.Contains(t, out, "TOTAUX PAR PAYS")
	assert.Contains(t, out, "LISTE DES CLIENTS (2)")

	// Month sections in chronological order.
	assert.Less(t, strings.Index(out, "03/2024"), strings.Index(out, "07/2024"))

	// The home-country client never shows up.
	assert.NotContains(t, out, "Maison SARL")

	// Grand total = sum of month subtotals = full-range total.
	assert.Contains(t, out, "TOTAL GÉNÉRAL: 150.00€")
	assert.Equal(t, int64(15000), full.TotalCents())

	// Country totals, ascending: Allemagne before Espagne.
	assert.Contains(t, out, "Allemagne")
	assert.Contains(t, out, "Espagne")
	assert.Less(t, strings.Index(out, "Allemagne"), strings.Index(out, "Espagne"))
}

func TestPrintSummarySingleMonthHeader(t *testing.T) {
	ctx := context.Background()
	march := des.Month{Year: 2024, Month: time.March}

	invoices := []models.Invoice{fixtureInvoice("in_1", "cus_c1", "C1", "DE", 10000)}
	agg, full := aggregate(t, nil, invoices)

	var buf bytes.Buffer
	PrintSummary(ctx, &buf, agg, []des.Month{march}, map[des.Month][]models.Invoice{march: invoices}, full)
	out := buf.String()

	assert.Contains(t, out, "EXPORT DES - 03/2024")
	assert.NotContains(t, out, "→")
	assert.Contains(t, out, "TOTAL GÉNÉRAL: 100.00€")
}

func TestPrintSummaryEmptyPeriod(t *testing.T) {
	ctx := context.Background()
	march := des.Month{Year: 2024, Month: time.March}

	agg, full := aggregate(t, nil, nil)

	var buf bytes.Buffer
	PrintSummary(ctx, &buf, agg, []des.Month{march}, map[des.Month][]models.Invoice{}, full)
	out := buf.String()

	assert.Contains(t, out, "Aucun client intra-UE trouvé.")
	assert.Contains(t, out, "Aucun client intra-UE trouvé sur la période.")
	assert.NotContains(t, out, "TOTAL GÉNÉRAL")
}

func TestPrintSummaryTruncatesLongNames(t *testing.T) {
	ctx := context.Background()
	march := des.Month{Year: 2024, Month: time.March}

	longName := "Extremely Long Company Name That Overflows GmbH & Co KG"
	invoices := []models.Invoice{fixtureInvoice("in_1", "cus_long", longName, "DE", 10000)}
	agg, full := aggregate(t, nil, invoices)

	var buf bytes.Buffer
	PrintSummary(ctx, &buf, agg, []des.Month{march}, map[des.Month][]models.Invoice{march: invoices}, full)
	out := buf.String()

	assert.NotContains(t, out, longName)
	// Month table caps names at 28 runes, roster at 25.
	assert.Contains(t, out, string([]rune(longName)[:26])+"..")
	assert.Contains(t, out, string([]rune(longName)[:23])+"..")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "exactly-..", truncate("exactly-10!", 10))

	// Rune-aware: accented names are cut on runes, not bytes.
	got := truncate("Société Générale Très Longue", 10)
	require.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, ".."))
}

func TestVatOrDash(t *testing.T) {
	vat := "DE123456789"
	empty := ""
	assert.Equal(t, "DE123456789", vatOrDash(&vat))
	assert.Equal(t, "-", vatOrDash(nil))
	assert.Equal(t, "-", vatOrDash(&empty))
}
