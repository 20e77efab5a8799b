package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

func TestAccountHandler_Create_DefaultsToUserRole(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
			if in.Role != domain.RoleUser || in.ActorID != "acc-1" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Account{ID: "acc-2", Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/accounts", strings.NewReader(`{"name":"Amy","email":"amy@example.com","password":"123456"}`))
	withIdentity(c, "acc-1", domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var got domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got.ID != "acc-2" {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}

func TestAccountHandler_Create_DuplicateEmail(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAccountHandler(stub)

	c, _ := newContext(http.MethodPost, "/v1/accounts", strings.NewReader(`{"name":"Amy","email":"amy@example.com","password":"123456","role":"admin"}`))
	withIdentity(c, "acc-1", domain.RoleAdmin)
	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountHandler_Create_InvalidRole(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	c, _ := newContext(http.MethodPost, "/v1/accounts", strings.NewReader(`{"name":"Amy","email":"amy@example.com","password":"123456","role":"root"}`))
	withIdentity(c, "acc-1", domain.RoleAdmin)
	var verr *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &verr) || verr.Fields["role"] == "" {
		t.Fatalf("expected role validation error, got %v", err)
	}
}

func TestAccountHandler_Delete_LastAdmin(t *testing.T) {
	stub := &stubAccountService{
		deleteFn: func(ctx context.Context, id, actorID string) error {
			if id != "acc-1" {
				t.Fatalf("unexpected id %s", id)
			}
			return domain.ErrLastAdmin
		},
	}
	h := NewAccountHandler(stub)

	c, _ := newContext(http.MethodDelete, "/v1/accounts/acc-1", nil)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")
	withIdentity(c, "acc-1", domain.RoleAdmin)
	if err := h.Delete(c); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}

func TestAccountHandler_Delete_Success(t *testing.T) {
	stub := &stubAccountService{
		deleteFn: func(ctx context.Context, id, actorID string) error { return nil },
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodDelete, "/v1/accounts/acc-3", nil)
	c.SetParamNames("id")
	c.SetParamValues("acc-3")
	withIdentity(c, "acc-1", domain.RoleAdmin)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAccountHandler_ChangeRole(t *testing.T) {
	stub := &stubAccountService{
		changeRoleFn: func(ctx context.Context, id string, role domain.Role, actorID string) (*domain.Account, error) {
			if id != "acc-2" || role != domain.RoleAdmin || actorID != "acc-1" {
				t.Fatalf("unexpected args %s %s %s", id, role, actorID)
			}
			return &domain.Account{ID: id, Role: role}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodPut, "/v1/accounts/acc-2/role", strings.NewReader(`{"role":"admin"}`))
	c.SetParamNames("id")
	c.SetParamValues("acc-2")
	withIdentity(c, "acc-1", domain.RoleAdmin)
	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Update_PassesOptionalFields(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
			if in.Name == nil || *in.Name != "Lee" || in.Email != nil || in.Role == nil || *in.Role != domain.RoleUser {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Account{ID: in.ID, Name: *in.Name, Role: *in.Role}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, _ := newContext(http.MethodPatch, "/v1/accounts/acc-2", strings.NewReader(`{"name":"Lee","role":"user"}`))
	c.SetParamNames("id")
	c.SetParamValues("acc-2")
	withIdentity(c, "acc-1", domain.RoleAdmin)
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAccountHandler_List(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(ctx context.Context, in ports.ListAccountsInput) (*ports.ListAccountsResult, error) {
			if in.Query != "amy" || in.Page != 2 {
				t.Fatalf("unexpected input %+v", in)
			}
			return &ports.ListAccountsResult{Items: []*domain.Account{{ID: "acc-1"}}, Total: 11, Admins: 1, Page: 2, Limit: 10, TotalPages: 2}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/accounts?query=amy&page=2", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp accountListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Admins != 1 || resp.TotalPages != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	stub := &stubAccountService{
		getFn: func(_ context.Context, id string) (*domain.Account, error) {
			if id == "acc-1" {
				return &domain.Account{ID: "acc-1", Email: "root@example.com", Role: domain.RoleAdmin}, nil
			}
			return nil, domain.ErrAccountNotFound
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/accounts/acc-1", nil)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "root@example.com") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	c, _ = newContext(http.MethodGet, "/v1/accounts/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
