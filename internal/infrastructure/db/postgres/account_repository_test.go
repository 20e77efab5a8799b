package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

var accountCols = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}

func newMock(t *testing.T) (*AccountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAccountRepository(db), mock
}

func accountRows(accounts ...domain.Account) *sqlmock.Rows {
	rows := sqlmock.NewRows(accountCols)
	for _, a := range accounts {
		rows.AddRow(a.ID, a.Name, a.Email, a.PasswordHash, string(a.Role), a.CreatedAt, a.UpdatedAt)
	}
	return rows
}

func adminRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func fixture(role domain.Role) domain.Account {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.NewString()
	return domain.Account{ID: id, Name: "Amy", Email: id + "@example.com", PasswordHash: "hash", Role: role, CreatedAt: now, UpdatedAt: now}
}

func TestAccountRepository_Create(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), "Amy", "amy@example.com", "hash", "user", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &domain.Account{Name: "Amy", Email: "amy@example.com", PasswordHash: "hash", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Fatalf("expected generated uuid, got %q", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountRepository_CreateUniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO accounts").WillReturnError(&pq.Error{Code: codeUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.Account{Name: "Amy", Email: "amy@example.com", Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountRepository_FindByEmailMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM accounts WHERE email = \\$1").
		WithArgs("ghost@example.com").
		WillReturnRows(accountRows())

	if _, err := repo.FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_FindByIDMalformed(t *testing.T) {
	repo, mock := newMock(t)

	if _, err := repo.FindByID(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestAccountRepository_List(t *testing.T) {
	repo, mock := newMock(t)
	a, b := fixture(domain.RoleAdmin), fixture(domain.RoleUser)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM accounts").
		WithArgs("%amy%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("%amy%", 10, 10).
		WillReturnRows(accountRows(a, b))

	accounts, total, err := repo.List(context.Background(), ports.ListAccountsFilter{Query: "amy", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 12 || len(accounts) != 2 || accounts[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected result total=%d accounts=%v", total, accounts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountRepository_DeleteLastAdminRollsBack(t *testing.T) {
	repo, mock := newMock(t)
	only := fixture(domain.RoleAdmin)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE role = \\$1 ORDER BY id FOR UPDATE").
		WithArgs("admin").
		WillReturnRows(adminRows(only.ID))
	mock.ExpectQuery("FROM accounts WHERE id = \\$1 FOR UPDATE").
		WithArgs(only.ID).
		WillReturnRows(accountRows(only))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), only.ID, domain.CheckRemoval)
	if !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountRepository_DeleteOneOfTwoAdmins(t *testing.T) {
	repo, mock := newMock(t)
	first, second := fixture(domain.RoleAdmin), fixture(domain.RoleAdmin)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE role = \\$1 ORDER BY id FOR UPDATE").
		WithArgs("admin").
		WillReturnRows(adminRows(first.ID, second.ID))
	mock.ExpectQuery("FROM accounts WHERE id = \\$1 FOR UPDATE").
		WithArgs(first.ID).
		WillReturnRows(accountRows(first))
	mock.ExpectExec("DELETE FROM accounts WHERE id = \\$1").
		WithArgs(first.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), first.ID, domain.CheckRemoval); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountRepository_DeleteMissing(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE role").WillReturnRows(adminRows())
	mock.ExpectQuery("FROM accounts WHERE id = \\$1 FOR UPDATE").WithArgs(id).WillReturnRows(accountRows())
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), id, domain.CheckRemoval); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_DemoteWithTwoAdmins(t *testing.T) {
	repo, mock := newMock(t)
	first, second := fixture(domain.RoleAdmin), fixture(domain.RoleAdmin)
	role := domain.RoleUser
	patch := domain.AccountPatch{Role: &role}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE role").
		WithArgs("admin").
		WillReturnRows(adminRows(first.ID, second.ID))
	mock.ExpectQuery("FROM accounts WHERE id = \\$1 FOR UPDATE").
		WithArgs(second.ID).
		WillReturnRows(accountRows(second))
	mock.ExpectExec("UPDATE accounts").
		WithArgs(second.ID, second.Name, second.Email, second.PasswordHash, "user", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), second.ID, patch, domain.PatchCheck(patch))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleUser || updated.CreatedAt != second.CreatedAt {
		t.Fatalf("unexpected account %+v", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountRepository_UpdateEmailUniqueViolation(t *testing.T) {
	repo, mock := newMock(t)
	target := fixture(domain.RoleUser)
	email := "taken@example.com"
	patch := domain.AccountPatch{Email: &email}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE role").WillReturnRows(adminRows(uuid.NewString()))
	mock.ExpectQuery("FROM accounts WHERE id = \\$1 FOR UPDATE").WithArgs(target.ID).WillReturnRows(accountRows(target))
	mock.ExpectExec("UPDATE accounts").WillReturnError(&pq.Error{Code: codeUniqueViolation})
	mock.ExpectRollback()

	if _, err := repo.Update(context.Background(), target.ID, patch, domain.PatchCheck(patch)); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountRepository_CountByRole(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM accounts WHERE role = \\$1").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByRole(context.Background(), domain.RoleAdmin)
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d (%v)", n, err)
	}
}
