package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

type CustomerRepository struct {
	db *sql.DB
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) All(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, image_url
FROM customers
ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	out := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return out, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var ok bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("customer exists: %w", err)
	}
	return ok, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// Summaries matches query against name and email; customers without
// invoices are included with zero totals.
func (r *CustomerRepository) Summaries(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT
    c.id,
    c.name,
    c.email,
    c.image_url,
    COUNT(i.id),
    COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0)
FROM customers c
LEFT JOIN invoices i ON c.id = i.customer_id
WHERE c.name ILIKE $1 ESCAPE '\' OR c.email ILIKE $1 ESCAPE '\'
GROUP BY c.id, c.name, c.email, c.image_url
ORDER BY c.name ASC`,
		likePattern(query),
	)
	if err != nil {
		return nil, fmt.Errorf("query customer summaries: %w", err)
	}
	defer rows.Close()

	out := []domain.CustomerSummary{}
	for rows.Next() {
		var s domain.CustomerSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ImageURL, &s.TotalInvoices, &s.TotalPending, &s.TotalPaid); err != nil {
			return nil, fmt.Errorf("scan customer summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer summaries: %w", err)
	}
	return out, nil
}
