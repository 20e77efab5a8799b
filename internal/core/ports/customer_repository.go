package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

type CustomerRepository interface {
	All(ctx context.Context) ([]domain.Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Summaries(ctx context.Context, query string) ([]domain.CustomerSummary, error)
}

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	Summaries(ctx context.Context, query string) ([]domain.CustomerSummary, error)
}
