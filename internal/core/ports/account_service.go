package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// CreateAccountInput carries the fields for a new account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	ActorID  string
}

// UpdateAccountInput carries optional changes. Nil fields are left untouched.
type UpdateAccountInput struct {
	ID       string
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
	ActorID  string
}

// ListAccountsInput carries the list endpoint parameters.
type ListAccountsInput struct {
	Query string
	Page  int
	Limit int
}

// ListAccountsResult is a page of accounts.
type ListAccountsResult struct {
	Items      []*domain.Account
	Total      int64
	Admins     int64
	Page       int
	Limit      int
	TotalPages int
}

// AccountService defines account management use cases.
type AccountService interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input ListAccountsInput) (*ListAccountsResult, error)
	UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error)
	ChangeRole(ctx context.Context, id string, role domain.Role, actorID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id, actorID string) error
	// Bootstrap creates the first admin when no admin exists yet. It reports
	// whether an account was created.
	Bootstrap(ctx context.Context, input CreateAccountInput) (bool, error)
}
