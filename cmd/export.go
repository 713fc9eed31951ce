package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"desexport/internal/billing"
	"desexport/internal/config"
	"desexport/internal/des"
	"desexport/internal/logger"
	"desexport/internal/report"
	"desexport/internal/sheets"
	"desexport/pkg/models"
)

// exitNotConfigured distinguishes "no usable credential" from data-fetch
// failures (which exit 1 through the usual error path).
const exitNotConfigured = 2

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export paid invoices as a DES report (CSV + console summary)",
	Long: `Fetch the paid Stripe invoices for a year, month by month, aggregate
pre-tax amounts per intra-EU client (excluding France) and produce:

  - a ;-delimited CSV export, one row per client
  - a console summary: per-month tables, per-country totals, the full
    client roster and the grand total
  - optionally, the same rows pushed to a Google Sheets worksheet

The Stripe API key comes from --api-key or the STRIPE_API_KEY environment
variable. Without a key the command exits with status 2 before any network
call.`,
	Example: `  # Export the current year
  desexport export

  # Export 2024 to a custom file
  desexport export --year 2024 -o /tmp/des_2024.csv

  # Export a single month
  desexport export --year 2024 --month 3

  # Push the export to a Google Sheet as well
  desexport export --sheet https://docs.google.com/spreadsheets/d/...`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().IntP("year", "y", 0, "Year to export (default: current year)")
	exportCmd.Flags().Int("month", 0, "Restrict the export to a single month (1-12)")
	exportCmd.Flags().StringP("output", "o", "", "Output CSV path (default: <output dir>/des_export_<year>.csv)")
	exportCmd.Flags().String("api-key", "", "Stripe API key (default: STRIPE_API_KEY)")
	exportCmd.Flags().String("sheet", "", "Google Sheets URL to push the export to (default: DES_SHEET_URL)")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")
	outputPath, _ := cmd.Flags().GetString("output")
	apiKey, _ := cmd.Flags().GetString("api-key")
	sheetURL, _ := cmd.Flags().GetString("sheet")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiKey == "" {
		apiKey = cfg.StripeAPIKey
	}
	if sheetURL == "" {
		sheetURL = cfg.SheetURL
	}
	if year == 0 {
		year = time.Now().Year()
	}
	if month < 0 || month > 12 {
		return fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if outputPath == "" {
		outputPath = filepath.Join(cfg.OutputDir, fmt.Sprintf("des_export_%d.csv", year))
	}

	// The missing-credential case is detected here, before any network
	// call, and reported with its own exit status.
	client, err := billing.NewClient(apiKey)
	if err != nil {
		if errors.Is(err, billing.ErrMissingAPIKey) {
			log.Error().Msg("No Stripe API key configured")
			fmt.Fprintln(os.Stderr, "ERREUR: configurez votre clé API Stripe via --api-key ou STRIPE_API_KEY")
			os.Exit(exitNotConfigured)
		}
		return err
	}

	ctx, cancel := exportContext(log)
	defer cancel()

	months := des.YearMonths(year)
	if month != 0 {
		months = []des.Month{{Year: year, Month: time.Month(month)}}
	}

	log.Info().Int("year", year).Int("months", len(months)).Msg("Fetching paid invoices")

	// Each month is fetched exactly once; the slices feed both the
	// per-month console tables and, as a union, the full-range
	// aggregation behind the CSV export.
	byMonth := make(map[des.Month][]models.Invoice, len(months))
	var all []models.Invoice
	for _, m := range months {
		start, end := des.MonthRange(m.Year, m.Month)
		invoices, err := client.ListPaidInvoices(ctx, start, end)
		if err != nil {
			return &billing.PeriodFetchError{Year: m.Year, Month: m.Month, Err: err}
		}
		byMonth[m] = invoices
		all = append(all, invoices...)
		log.Info().Str("month", m.String()).Int("invoices", len(invoices)).Msg("Fetched month")
	}
	log.Info().Int("invoices", len(all)).Msg("Fetched all paid invoices")

	// One resolver for the whole run: VAT lookups are memoized, so the
	// per-month and full-range passes cannot diverge on resolver results.
	resolver := des.NewResolver(client)
	aggregator := des.NewAggregator(resolver)
	full := aggregator.Aggregate(ctx, all)
	log.Info().Int("clients", full.Len()).Msg("Aggregated intra-EU clients")

	if err := report.ExportCSV(full, outputPath); err != nil {
		return fmt.Errorf("CSV export failed: %w", err)
	}
	log.Info().Str("path", outputPath).Msg("Wrote CSV export")

	report.PrintSummary(ctx, os.Stdout, aggregator, months, byMonth, full)

	if sheetURL != "" {
		if err := pushToSheet(ctx, full, sheetURL, cfg.SheetWorksheet, log); err != nil {
			return err
		}
	}

	return nil
}

// pushToSheet sends the export rows to the configured Google Sheet.
func pushToSheet(ctx context.Context, full *des.Aggregation, sheetURL, worksheet string, log zerolog.Logger) error {
	svc, err := sheets.NewService(ctx, sheetURL)
	if err != nil {
		return fmt.Errorf("failed to create sheets service: %w", err)
	}
	if err := svc.PushExport(ctx, full, worksheet); err != nil {
		return fmt.Errorf("failed to push export to Google Sheet: %w", err)
	}
	log.Info().Str("worksheet", worksheet).Msg("Pushed export to Google Sheet")
	return nil
}

// exportContext creates a context canceled on SIGINT/SIGTERM.
func exportContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling export")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
