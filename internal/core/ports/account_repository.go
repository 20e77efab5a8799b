package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// ListAccountsFilter carries the query parameters for listing accounts.
type ListAccountsFilter struct {
	Query string // optional: partial match on name or email
	Page  int    // 1-based
	Limit int
}

// AccountRepository is the persistence accessor for accounts.
//
// Update and Delete are guarded: the implementation must evaluate check
// against the target row and the admin count inside the same atomic unit as
// the write, so concurrent guarded mutations observe each other.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByEmail returns domain.ErrAccountNotFound when no account matches exactly.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	Update(ctx context.Context, id string, patch domain.AccountPatch, check domain.MutationCheck) (*domain.Account, error)
	Delete(ctx context.Context, id string, check domain.MutationCheck) error
}
