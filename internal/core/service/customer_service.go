package service

import (
	"context"
	"fmt"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

type CustomerService struct {
	repo ports.CustomerRepository
}

func NewCustomerService(repo ports.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// ListCustomers returns every customer ordered by name, for invoice forms.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Summaries returns customers matching query with their invoice totals.
func (s *CustomerService) Summaries(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	summaries, err := s.repo.Summaries(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("customer summaries: %w", err)
	}
	return summaries, nil
}
