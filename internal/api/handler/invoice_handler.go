package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List handles GET /v1/invoices.
//
// @Summary      Search invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Matches customer name, email, amount, date or status"
// @Param        page   query     int     false  "Page number"  default(1)
// @Success      200    {object}  invoiceListResponse
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	res, err := h.service.ListInvoices(c.Request().Context(), c.QueryParam("query"), queryInt(c, "page", 1))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoiceListResponse{
		Items:      toInvoiceRows(res.Items),
		Page:       res.Page,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /v1/invoices/:id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  invoiceResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	inv, err := h.service.GetInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// Create handles POST /v1/invoices. A repeated Idempotency-Key returns the
// invoice created by the first request with 200 instead of 201.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      invoiceRequest  true   "Invoice, amount in dollars"
// @Success      201              {object}  invoiceResponse
// @Success      200              {object}  invoiceResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.CreateInvoice(c.Request().Context(), ports.InvoiceInput{
		CustomerID:     req.CustomerID,
		Amount:         req.Amount,
		Status:         req.Status,
		ActorID:        actor.AccountID,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toInvoiceResponse(res.Invoice))
}

// Update handles PUT /v1/invoices/:id.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Invoice id"
// @Param        body  body      invoiceRequest  true  "Invoice, amount in dollars"
// @Success      200   {object}  invoiceResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	inv, err := h.service.UpdateInvoice(c.Request().Context(), c.Param("id"), ports.InvoiceInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Status:     req.Status,
		ActorID:    actor.AccountID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// Delete handles DELETE /v1/invoices/:id.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  string  true  "Invoice id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteInvoice(c.Request().Context(), c.Param("id"), actor.AccountID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
