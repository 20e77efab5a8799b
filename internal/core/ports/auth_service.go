package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// Identity is the authenticated caller as seen by handlers.
type Identity struct {
	AccountID string
	Email     string
	Name      string
	Role      domain.Role
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}
