package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

func TestCustomerRepository_ExistsMalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	ok, err := NewCustomerRepository(db).Exists(context.Background(), "cus-1")
	if err != nil || ok {
		t.Fatalf("expected false without error, got %v %v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestCustomerRepository_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	id := uuid.NewString()

	mock.ExpectQuery("SELECT EXISTS").WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewCustomerRepository(db).Exists(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("expected true, got %v %v", ok, err)
	}
}

func TestCustomerRepository_Summaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("LEFT JOIN invoices").
		WithArgs("%amy%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "image_url", "count", "pending", "paid"}).
			AddRow("cus-5", "Amy Burns", "amy@burns.com", "/customers/amy-burns.png", 3, 1250, 54246))

	got, err := NewCustomerRepository(db).Summaries(context.Background(), "amy")
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	want := domain.CustomerSummary{
		Customer:      domain.Customer{ID: "cus-5", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		TotalInvoices: 3,
		TotalPending:  1250,
		TotalPaid:     54246,
	}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRevenueRepository_All(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM revenue").
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).AddRow("Jan", 2000).AddRow("Feb", 1800))

	got, err := NewRevenueRepository(db).All(context.Background())
	if err != nil || len(got) != 2 || got[1].Month != "Feb" || got[1].Revenue != 1800 {
		t.Fatalf("unexpected revenue %v (%v)", got, err)
	}
}

func TestSeed_SkipsExistingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO customers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO invoices").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO revenue").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counts, err := Seed(context.Background(), db, SeedData{
		Customers: []domain.Customer{{ID: uuid.NewString(), Name: "Evil Rabbit"}},
		Invoices:  []domain.Invoice{{ID: uuid.NewString(), Amount: 666, Status: domain.InvoicePending}},
		Revenue:   []domain.Revenue{{Month: "Jan", Revenue: 2000}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if counts != (SeedCounts{Customers: 1, Invoices: 0, Revenue: 1}) {
		t.Fatalf("unexpected counts %+v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
