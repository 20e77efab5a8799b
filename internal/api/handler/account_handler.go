package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

// AccountHandler serves the admin account management endpoints. Domain
// errors are returned as is and rendered by the HTTP error handler.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List handles GET /v1/accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Name or email filter"
// @Param        page   query     int     false  "Page number"  default(1)
// @Param        limit  query     int     false  "Page size"    default(10)
// @Success      200    {object}  accountListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	res, err := h.service.ListAccounts(c.Request().Context(), ports.ListAccountsInput{
		Query: c.QueryParam("query"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountListResponse{
		Items:      res.Items,
		Total:      res.Total,
		Admins:     res.Admins,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /v1/accounts/:id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.service.GetAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Create handles POST /v1/accounts.
//
// @Summary      Create an account
// @Description  Rejected with 409 when an account with the same email exists.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleUser
	}

	account, err := h.service.CreateAccount(c.Request().Context(), ports.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		ActorID:  actor.AccountID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// Update handles PATCH /v1/accounts/:id.
//
// @Summary      Update an account
// @Description  Demoting the last admin is rejected with 409.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Changed fields"
// @Success      200   {object}  domain.Account
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/accounts/{id} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	input := ports.UpdateAccountInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ActorID:  actor.AccountID,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	account, err := h.service.UpdateAccount(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// ChangeRole handles PUT /v1/accounts/:id/role.
//
// @Summary      Change an account role
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  domain.Account
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/accounts/{id}/role [put]
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.service.ChangeRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role), actor.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete handles DELETE /v1/accounts/:id.
//
// @Summary      Delete an account
// @Description  Deleting the last admin is rejected with 409.
// @Tags         accounts
// @Security     BearerAuth
// @Param        id   path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAccount(c.Request().Context(), c.Param("id"), actor.AccountID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
