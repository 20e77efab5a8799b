package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, id string, role domain.Role) {
	c.Set("account_id", id)
	c.Set("email", id+"@example.com")
	c.Set("name", "Caller")
	c.Set("role", string(role))
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Account, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

type stubAccountService struct {
	createFn     func(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error)
	getFn        func(ctx context.Context, id string) (*domain.Account, error)
	listFn       func(ctx context.Context, in ports.ListAccountsInput) (*ports.ListAccountsResult, error)
	updateFn     func(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error)
	changeRoleFn func(ctx context.Context, id string, role domain.Role, actorID string) (*domain.Account, error)
	deleteFn     func(ctx context.Context, id, actorID string) error
}

func (s *stubAccountService) CreateAccount(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, in)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) ListAccounts(ctx context.Context, in ports.ListAccountsInput) (*ports.ListAccountsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubAccountService) UpdateAccount(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, in)
}

func (s *stubAccountService) ChangeRole(ctx context.Context, id string, role domain.Role, actorID string) (*domain.Account, error) {
	return s.changeRoleFn(ctx, id, role, actorID)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func (s *stubAccountService) Bootstrap(context.Context, ports.CreateAccountInput) (bool, error) {
	return false, nil
}

type stubInvoiceService struct {
	createFn func(ctx context.Context, in ports.InvoiceInput) (*ports.InvoiceResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Invoice, error)
	updateFn func(ctx context.Context, id string, in ports.InvoiceInput) (*domain.Invoice, error)
	deleteFn func(ctx context.Context, id, actorID string) error
	listFn   func(ctx context.Context, query string, page int) (*ports.ListInvoicesResult, error)
}

func (s *stubInvoiceService) CreateInvoice(ctx context.Context, in ports.InvoiceInput) (*ports.InvoiceResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubInvoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.getFn(ctx, id)
}

func (s *stubInvoiceService) UpdateInvoice(ctx context.Context, id string, in ports.InvoiceInput) (*domain.Invoice, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubInvoiceService) DeleteInvoice(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func (s *stubInvoiceService) ListInvoices(ctx context.Context, query string, page int) (*ports.ListInvoicesResult, error) {
	return s.listFn(ctx, query, page)
}
