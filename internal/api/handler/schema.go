package handler

import (
	"github.com/shopspring/decimal"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// --- Accounts ---

type createAccountRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type updateAccountRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type accountListResponse struct {
	Items      []*domain.Account `json:"items"`
	Total      int64             `json:"total"`
	Admins     int64             `json:"admins"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// --- Invoices ---

// invoiceRequest carries the amount in dollars. Field rules are checked by
// the invoice service so the messages match the invoice form.
type invoiceRequest struct {
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"number"`
	Status     string          `json:"status"`
}

type invoiceResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Status        string `json:"status"`
	Date          string `json:"date"`
}

type invoiceRowResponse struct {
	invoiceResponse
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

type invoiceListResponse struct {
	Items      []invoiceRowResponse `json:"items"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// --- Customers ---

type customerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type customerSummaryResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	ImageURL            string `json:"image_url"`
	TotalInvoices       int64  `json:"total_invoices"`
	TotalPending        int64  `json:"total_pending"`
	TotalPaid           int64  `json:"total_paid"`
	TotalPendingDisplay string `json:"total_pending_display"`
	TotalPaidDisplay    string `json:"total_paid_display"`
}

// --- Dashboard ---

type revenueResponse struct {
	Revenue  []domain.Revenue `json:"revenue"`
	YAxis    []string         `json:"y_axis_labels"`
	TopLabel int64            `json:"top_label"`
}

type cardsResponse struct {
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	NumberOfCustomers    int64  `json:"number_of_customers"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}
