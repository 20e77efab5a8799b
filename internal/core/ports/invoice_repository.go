package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// InvoiceRepository is the persistence accessor for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, id string) error
	// Filtered returns one page of invoices whose customer name, email,
	// amount, date or status matches query.
	Filtered(ctx context.Context, query string, limit, offset int) ([]domain.InvoiceRow, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	Latest(ctx context.Context, limit int) ([]domain.InvoiceRow, error)
	Count(ctx context.Context) (int64, error)
	// TotalsByStatus returns the summed amount in cents for paid and pending invoices.
	TotalsByStatus(ctx context.Context) (paid, pending int64, err error)
}

// IdempotencyStore remembers which invoice a client-supplied key produced.
//
// Reserve claims key atomically. When the key was already claimed it reports
// reserved=false together with the stored invoice id, which is empty while
// the first request is still running.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (invoiceID string, reserved bool, err error)
	Complete(ctx context.Context, key, invoiceID string) error
	Release(ctx context.Context, key string) error
}
