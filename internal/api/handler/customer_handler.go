package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /v1/customers, the options of the invoice form.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  customerOption
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.service.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]customerOption, 0, len(customers))
	for _, cu := range customers {
		out = append(out, customerOption{ID: cu.ID, Name: cu.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// Summary handles GET /v1/customers/summary.
//
// @Summary      Customers with invoice totals
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        query  query    string  false  "Name or email filter"
// @Success      200    {array}  customerSummaryResponse
// @Router       /v1/customers/summary [get]
func (h *CustomerHandler) Summary(c echo.Context) error {
	summaries, err := h.service.Summaries(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerSummaries(summaries))
}
