package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Revenue handles GET /v1/dashboard/revenue.
//
// @Summary      Monthly revenue
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revenueResponse
// @Router       /v1/dashboard/revenue [get]
func (h *DashboardHandler) Revenue(c echo.Context) error {
	chart, err := h.service.Revenue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueResponse{Revenue: chart.Months, YAxis: chart.YAxis, TopLabel: chart.TopLabel})
}

// LatestInvoices handles GET /v1/dashboard/latest-invoices.
//
// @Summary      Five most recent invoices
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  invoiceRowResponse
// @Router       /v1/dashboard/latest-invoices [get]
func (h *DashboardHandler) LatestInvoices(c echo.Context) error {
	rows, err := h.service.LatestInvoices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceRows(rows))
}

// Cards handles GET /v1/dashboard/cards.
//
// @Summary      Summary cards
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cardsResponse
// @Router       /v1/dashboard/cards [get]
func (h *DashboardHandler) Cards(c echo.Context) error {
	cards, err := h.service.Cards(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cardsResponse{
		NumberOfInvoices:     cards.NumberOfInvoices,
		NumberOfCustomers:    cards.NumberOfCustomers,
		TotalPaidInvoices:    domain.FormatCurrency(cards.TotalPaid),
		TotalPendingInvoices: domain.FormatCurrency(cards.TotalPending),
	})
}
