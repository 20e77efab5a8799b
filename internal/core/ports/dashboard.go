package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

type RevenueRepository interface {
	All(ctx context.Context) ([]domain.Revenue, error)
}

// RevenueChart is the revenue series with its y-axis labels.
type RevenueChart struct {
	Months   []domain.Revenue
	YAxis    []string
	TopLabel int64
}

// DashboardService serves the overview page.
type DashboardService interface {
	Revenue(ctx context.Context) (*RevenueChart, error)
	LatestInvoices(ctx context.Context) ([]domain.InvoiceRow, error)
	Cards(ctx context.Context) (*domain.CardData, error)
}
