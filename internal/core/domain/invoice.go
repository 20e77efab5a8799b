package domain

import "time"

// InvoiceStatus is set directly by the user; there is no state machine.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	return s == InvoicePending || s == InvoicePaid
}

// Invoice is a flat invoices row. Amount is stored in cents.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       time.Time     `json:"date"`
}

// InvoiceRow is an invoice joined with the customer it belongs to.
type InvoiceRow struct {
	Invoice
	CustomerName  string `json:"name"`
	CustomerEmail string `json:"email"`
	ImageURL      string `json:"image_url"`
}
