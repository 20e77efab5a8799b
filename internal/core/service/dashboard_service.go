package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const latestInvoicesLimit = 5

type DashboardService struct {
	revenue   ports.RevenueRepository
	invoices  ports.InvoiceRepository
	customers ports.CustomerRepository
}

func NewDashboardService(revenue ports.RevenueRepository, invoices ports.InvoiceRepository, customers ports.CustomerRepository) *DashboardService {
	return &DashboardService{revenue: revenue, invoices: invoices, customers: customers}
}

func (s *DashboardService) Revenue(ctx context.Context) (*ports.RevenueChart, error) {
	months, err := s.revenue.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch revenue: %w", err)
	}
	labels, top := domain.YAxis(months)
	return &ports.RevenueChart{Months: months, YAxis: labels, TopLabel: top}, nil
}

func (s *DashboardService) LatestInvoices(ctx context.Context) ([]domain.InvoiceRow, error) {
	rows, err := s.invoices.Latest(ctx, latestInvoicesLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch latest invoices: %w", err)
	}
	return rows, nil
}

// Cards runs the three summary queries concurrently; the first failure cancels the rest.
func (s *DashboardService) Cards(ctx context.Context) (*domain.CardData, error) {
	var cards domain.CardData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.invoices.Count(gctx)
		cards.NumberOfInvoices = n
		return err
	})
	g.Go(func() error {
		n, err := s.customers.Count(gctx)
		cards.NumberOfCustomers = n
		return err
	})
	g.Go(func() error {
		paid, pending, err := s.invoices.TotalsByStatus(gctx)
		cards.TotalPaid, cards.TotalPending = paid, pending
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch card data: %w", err)
	}
	return &cards, nil
}
