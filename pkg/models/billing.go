package models

import "time"

// Invoice statuses and tax ID types we act on, as the billing provider
// reports them.
const (
	InvoiceStatusPaid = "paid"
	TaxIDTypeEUVAT    = "eu_vat"
)

// Address holds the postal address fields relevant for country scoping.
type Address struct {
	Country string // ISO 3166-1 alpha-2, empty when not on file
	City    string
}

// TaxID is a typed tax identifier attached to a customer.
type TaxID struct {
	Type  string // e.g. "eu_vat"
	Value string
}

// Customer is a billing customer, decoupled from the provider's API objects
// so resolution and aggregation can run on synthetic fixtures.
type Customer struct {
	ID       string
	Name     string
	Email    string
	Address  *Address // billing address, nil when absent
	Shipping *Address // shipping address, nil when absent
}

// Invoice is one billing invoice. Amounts are stored in cents to avoid
// float issues; Subtotal is nil when the provider omits it.
type Invoice struct {
	ID       string
	Status   string
	Created  time.Time
	Subtotal *int64    // pre-tax amount in cents
	Customer *Customer // nil when the invoice has no customer attached
}
