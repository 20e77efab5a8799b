package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// InvoiceInput is the DTO for create and update. Amount is in dollars.
type InvoiceInput struct {
	CustomerID     string
	Amount         decimal.Decimal
	Status         string
	ActorID        string
	IdempotencyKey string
}

// InvoiceResult is returned after a create.
type InvoiceResult struct {
	Invoice *domain.Invoice
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// ListInvoicesResult is one page of the invoices table.
type ListInvoicesResult struct {
	Items      []domain.InvoiceRow
	Page       int
	TotalPages int
}

// InvoiceService defines invoice use cases.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input InvoiceInput) (*InvoiceResult, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id, actorID string) error
	ListInvoices(ctx context.Context, query string, page int) (*ListInvoicesResult, error)
}
