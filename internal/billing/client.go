// Package billing wraps the Stripe API for the read-only calls the DES
// report needs: listing paid invoices over a time window and listing a
// customer's tax identifiers. API objects are converted to the
// transport-independent structs in pkg/models at this boundary.
package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"desexport/internal/logger"
	"desexport/pkg/models"
)

const (
	invoicePageSize = 100
	taxIDPageSize   = 10
)

// Client is a Stripe-backed billing client. The credential is held by the
// wrapped SDK client, not in package-global state, so isolated instances
// can coexist within one process.
type Client struct {
	sc  *client.API
	log zerolog.Logger
}

// NewClient builds a client for the given API key. Returns ErrMissingAPIKey
// when the key is empty so callers can report "not configured" before any
// network call is attempted.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &Client{
		sc:  sc,
		log: logger.WithComponent("billing"),
	}, nil
}

// ListPaidInvoices returns every invoice with status "paid" created in
// [start, end), with the customer expanded inline so no per-invoice
// round-trip is needed. The SDK iterator pages through the listing on its
// starting-after cursor; all pages are drained into one slice before
// returning. Errors propagate to the caller untouched.
func (c *Client) ListPaidInvoices(ctx context.Context, start, end time.Time) ([]models.Invoice, error) {
	params := &stripe.InvoiceListParams{
		Status: stripe.String(string(stripe.InvoiceStatusPaid)),
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: start.Unix(),
			LesserThan:         end.Unix(),
		},
	}
	params.Context = ctx
	params.Limit = stripe.Int64(invoicePageSize)
	params.AddExpand("data.customer")

	var invoices []models.Invoice
	it := c.sc.Invoices.List(params)
	for it.Next() {
		invoices = append(invoices, invoiceFromStripe(it.Invoice()))
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	c.log.Debug().
		Time("start", start).
		Time("end", end).
		Int("count", len(invoices)).
		Msg("Fetched paid invoices")

	return invoices, nil
}

// ListTaxIDs returns the first page (up to 10 entries) of the customer's
// tax identifiers.
func (c *Client) ListTaxIDs(ctx context.Context, customerID string) ([]models.TaxID, error) {
	params := &stripe.TaxIDListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(taxIDPageSize)

	var ids []models.TaxID
	it := c.sc.TaxIDs.List(params)
	for it.Next() {
		t := it.TaxID()
		ids = append(ids, models.TaxID{Type: string(t.Type), Value: t.Value})
		if len(ids) == taxIDPageSize {
			break
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func invoiceFromStripe(inv *stripe.Invoice) models.Invoice {
	subtotal := inv.Subtotal
	return models.Invoice{
		ID:       inv.ID,
		Status:   string(inv.Status),
		Created:  time.Unix(inv.Created, 0).UTC(),
		Subtotal: &subtotal,
		Customer: customerFromStripe(inv.Customer),
	}
}

func customerFromStripe(cus *stripe.Customer) *models.Customer {
	if cus == nil {
		return nil
	}
	customer := &models.Customer{
		ID:      cus.ID,
		Name:    cus.Name,
		Email:   cus.Email,
		Address: addressFromStripe(cus.Address),
	}
	if cus.Shipping != nil {
		customer.Shipping = addressFromStripe(cus.Shipping.Address)
	}
	return customer
}

func addressFromStripe(addr *stripe.Address) *models.Address {
	if addr == nil {
		return nil
	}
	return &models.Address{
		Country: addr.Country,
		City:    addr.City,
	}
}
