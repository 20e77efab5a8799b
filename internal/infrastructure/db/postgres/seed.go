package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// SeedData is the fixture set written by Seed.
type SeedData struct {
	Customers []domain.Customer
	Invoices  []domain.Invoice
	Revenue   []domain.Revenue
}

// SeedCounts reports how many rows Seed actually inserted.
type SeedCounts struct {
	Customers int64
	Invoices  int64
	Revenue   int64
}

// Seed inserts data in one transaction. Rows that already exist are skipped,
// so running it twice is harmless.
func Seed(ctx context.Context, db *sql.DB, data SeedData) (SeedCounts, error) {
	var counts SeedCounts

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range data.Customers {
		res, err := tx.ExecContext(ctx, `
INSERT INTO customers (id, name, email, image_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Email, c.ImageURL,
		)
		if err != nil {
			return counts, fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
		counts.Customers += affected(res)
	}

	for _, inv := range data.Invoices {
		res, err := tx.ExecContext(ctx, `
INSERT INTO invoices (id, customer_id, amount, status, date)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`,
			inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date,
		)
		if err != nil {
			return counts, fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
		counts.Invoices += affected(res)
	}

	for _, rev := range data.Revenue {
		res, err := tx.ExecContext(ctx, `
INSERT INTO revenue (month, revenue)
VALUES ($1, $2)
ON CONFLICT (month) DO NOTHING`,
			rev.Month, rev.Revenue,
		)
		if err != nil {
			return counts, fmt.Errorf("seed revenue %s: %w", rev.Month, err)
		}
		counts.Revenue += affected(res)
	}

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("commit tx: %w", err)
	}
	return counts, nil
}

func affected(res sql.Result) int64 {
	n, _ := res.RowsAffected()
	return n
}
