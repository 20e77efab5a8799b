package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

type RevenueRepository struct {
	db *sql.DB
}

var _ ports.RevenueRepository = (*RevenueRepository)(nil)

func NewRevenueRepository(db *sql.DB) *RevenueRepository {
	return &RevenueRepository{db: db}
}

// All returns the revenue rows in calendar order.
func (r *RevenueRepository) All(ctx context.Context) ([]domain.Revenue, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT month, revenue
FROM revenue
ORDER BY array_position($1::varchar[], month)`, pq.Array(domain.Months))
	if err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	out := []domain.Revenue{}
	for rows.Next() {
		var rev domain.Revenue
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue: %w", err)
	}
	return out, nil
}
