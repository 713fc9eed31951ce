package des

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"desexport/internal/logger"
	"desexport/pkg/models"
)

// ClientRecord is one customer's aggregated activity within an aggregation
// scope (a single month or the full report range).
type ClientRecord struct {
	CustomerID   string
	Name         string
	Email        string
	CountryCode  string
	CountryName  string
	VATNumber    *string // nil when no EU VAT number is on file
	TotalCents   int64   // cumulative pre-tax amount in cents
	InvoiceCount int
}

// TotalEuros returns the cumulative pre-tax amount in euros, for display.
// Calculations stay in cents.
func (c *ClientRecord) TotalEuros() float64 {
	return float64(c.TotalCents) / 100
}

// Aggregation holds the result of one aggregation pass: at most one record
// per customer ID, in first-seen order.
type Aggregation struct {
	byID  map[string]*ClientRecord
	order []*ClientRecord
}

// Records returns the per-customer records keyed by customer ID.
func (ag *Aggregation) Records() map[string]*ClientRecord {
	return ag.byID
}

// Len returns the number of distinct clients.
func (ag *Aggregation) Len() int {
	return len(ag.order)
}

// TotalCents sums the pre-tax totals of all records.
func (ag *Aggregation) TotalCents() int64 {
	var total int64
	for _, rec := range ag.order {
		total += rec.TotalCents
	}
	return total
}

// ExportOrder returns the records sorted by country code ascending, ties
// keeping first-seen order. This is the row order of the CSV export.
func (ag *Aggregation) ExportOrder() []*ClientRecord {
	records := append([]*ClientRecord(nil), ag.order...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CountryCode < records[j].CountryCode
	})
	return records
}

// DisplayOrder returns the records sorted by (country code, client name),
// the order used by the console tables.
func (ag *Aggregation) DisplayOrder() []*ClientRecord {
	records := append([]*ClientRecord(nil), ag.order...)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CountryCode != records[j].CountryCode {
			return records[i].CountryCode < records[j].CountryCode
		}
		return records[i].Name < records[j].Name
	})
	return records
}

// Aggregator folds invoices into per-customer records, keeping only paid
// invoices of customers resolved to a designated country. VAT numbers come
// from the shared resolver, so per-month and full-range passes of the same
// run cannot diverge on resolver results.
type Aggregator struct {
	resolver *Resolver
	log      zerolog.Logger
}

// NewAggregator creates an aggregator using the given resolver.
func NewAggregator(resolver *Resolver) *Aggregator {
	return &Aggregator{
		resolver: resolver,
		log:      logger.WithComponent("aggregator"),
	}
}

// Aggregate folds the invoices, in input order, into one record per
// designated-country customer. Invoices without a customer, without a paid
// status, or whose customer resolves outside the designated table are
// skipped; a customer with no in-scope invoice never appears. Each call
// starts from an empty result, so aggregating the same input twice yields
// identical totals.
func (a *Aggregator) Aggregate(ctx context.Context, invoices []models.Invoice) *Aggregation {
	ag := &Aggregation{byID: make(map[string]*ClientRecord)}

	for _, inv := range invoices {
		if inv.Customer == nil || inv.Status != models.InvoiceStatusPaid {
			continue
		}

		code, ok := ResolveCountry(inv.Customer)
		if !ok {
			continue
		}
		name, ok := CountryName(code)
		if !ok {
			a.log.Debug().
				Str("customer_id", inv.Customer.ID).
				Str("country", code).
				Msg("Customer outside designated countries, skipping invoice")
			continue
		}

		rec, seen := ag.byID[inv.Customer.ID]
		if !seen {
			rec = &ClientRecord{
				CustomerID:  inv.Customer.ID,
				Name:        inv.Customer.Name,
				Email:       inv.Customer.Email,
				CountryCode: code,
				CountryName: name,
				VATNumber:   a.resolver.VATNumber(ctx, inv.Customer.ID),
			}
			ag.byID[inv.Customer.ID] = rec
			ag.order = append(ag.order, rec)
		}

		if inv.Subtotal != nil {
			rec.TotalCents += *inv.Subtotal
		}
		rec.InvoiceCount++
	}

	return ag
}
