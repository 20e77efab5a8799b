package domain

// Customer is the party an invoice is billed to.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerSummary aggregates a customer's invoices. Totals are in cents.
type CustomerSummary struct {
	Customer
	TotalInvoices int64 `json:"total_invoices"`
	TotalPending  int64 `json:"total_pending"`
	TotalPaid     int64 `json:"total_paid"`
}
