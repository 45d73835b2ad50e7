package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// AccountHandler handles HTTP requests for accounts.
type AccountHandler struct {
	accountService service.AccountService
	logger         *logger.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, logger: logger}
}

// RegisterRoutes registers the account routes to the Echo group.
func (h *AccountHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAccount)
	g.GET("", h.GetAllAccounts)
	g.GET("/:id", h.GetAccountByID)
	g.PUT("/:id", h.UpdateAccount)
	g.DELETE("/:id", h.DeleteAccount)
}

// CreateAccount godoc
// @Summary Create a new account
// @Description Create a brokerage account inside a household
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account  body    dto.CreateAccountRequest   true    "Account to create"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.accountService.CreateAccount(c.Request().Context(), &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetAllAccounts godoc
// @Summary Get all accounts
// @Description List accounts, optionally filtered by household
// @Tags accounts
// @Produce  json
// @Param   household_id  query   int false   "Filter by household ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) GetAllAccounts(c echo.Context) error {
	var householdID uint
	if raw := c.QueryParam("household_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid household_id"})
		}
		householdID = uint(parsed)
	}

	accounts, err := h.accountService.GetAllAccounts(c.Request().Context(), householdID)
	if err != nil {
		h.logger.Error("Failed to get accounts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get accounts"})
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetAccountByID godoc
// @Summary Get an account by ID
// @Description Get a single account
// @Tags accounts
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	resp, err := h.accountService.GetAccountByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateAccount godoc
// @Summary Update an account
// @Description Update an account's name, type or currency
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Param   account  body    dto.UpdateAccountRequest   true    "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.accountService.UpdateAccount(c.Request().Context(), id, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// DeleteAccount godoc
// @Summary Delete an account
// @Description Delete an account with its positions, allocations, plans and dividends
// @Tags accounts
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
