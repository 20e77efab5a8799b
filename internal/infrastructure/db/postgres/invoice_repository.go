package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const invoiceRowSelect = `
SELECT i.id, i.customer_id, i.amount, i.status, i.date, c.name, c.email, c.image_url
FROM invoices i
JOIN customers c ON i.customer_id = c.id`

const invoiceFilter = `
WHERE c.name ILIKE $1 ESCAPE '\'
   OR c.email ILIKE $1 ESCAPE '\'
   OR i.amount::text ILIKE $1 ESCAPE '\'
   OR i.date::text ILIKE $1 ESCAPE '\'
   OR i.status ILIKE $1 ESCAPE '\'`

type InvoiceRepository struct {
	db *sql.DB
}

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create assigns inv a new id and inserts it.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO invoices (id, customer_id, amount, status, date)
VALUES ($1, $2, $3, $4, $5)`,
		inv.ID,
		inv.CustomerID,
		inv.Amount,
		string(inv.Status),
		inv.Date,
	)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if !validID(id) {
		return nil, domain.ErrInvoiceNotFound
	}
	var (
		inv    domain.Invoice
		status string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, customer_id, amount, status, date
FROM invoices
WHERE id = $1`,
		id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &inv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.Status = domain.InvoiceStatus(status)
	return &inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	if !validID(inv.ID) {
		return domain.ErrInvoiceNotFound
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE invoices
SET customer_id = $2, amount = $3, status = $4
WHERE id = $1`,
		inv.ID,
		inv.CustomerID,
		inv.Amount,
		string(inv.Status),
	)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInvoiceNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Filtered(ctx context.Context, query string, limit, offset int) ([]domain.InvoiceRow, error) {
	return r.queryRows(ctx, invoiceRowSelect+invoiceFilter+`
ORDER BY i.date DESC
LIMIT $2 OFFSET $3`,
		likePattern(query), limit, offset,
	)
}

func (r *InvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM invoices i
JOIN customers c ON i.customer_id = c.id`+invoiceFilter,
		likePattern(query),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count filtered invoices: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]domain.InvoiceRow, error) {
	return r.queryRows(ctx, invoiceRowSelect+`
ORDER BY i.date DESC
LIMIT $1`,
		limit,
	)
}

func (r *InvoiceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepository) TotalsByStatus(ctx context.Context) (paid, pending int64, err error) {
	err = r.db.QueryRowContext(ctx, `
SELECT
    COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
FROM invoices`).Scan(&paid, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("invoice totals: %w", err)
	}
	return paid, pending, nil
}

func (r *InvoiceRepository) queryRows(ctx context.Context, query string, args ...any) ([]domain.InvoiceRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	out := []domain.InvoiceRow{}
	for rows.Next() {
		var (
			row    domain.InvoiceRow
			status string
		)
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Amount, &status, &row.Date, &row.CustomerName, &row.CustomerEmail, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		row.Status = domain.InvoiceStatus(status)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return out, nil
}
