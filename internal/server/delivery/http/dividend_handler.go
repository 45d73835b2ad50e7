package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// DividendHandler handles HTTP requests for dividends.
type DividendHandler struct {
	dividendService service.DividendService
	logger          *logger.Logger
}

// NewDividendHandler creates a new DividendHandler.
func NewDividendHandler(dividendService service.DividendService, logger *logger.Logger) *DividendHandler {
	return &DividendHandler{dividendService: dividendService, logger: logger}
}

// RegisterRoutes registers dividend routes.
func (h *DividendHandler) RegisterRoutes(accounts, dividends *echo.Group) {
	accounts.POST("/:id/dividends", h.CreateDividend)
	accounts.GET("/:id/dividends", h.GetDividendsByAccount)
	accounts.GET("/:id/dividends/summary", h.GetDividendSummary)
	dividends.DELETE("/:id", h.DeleteDividend)
}

// CreateDividend godoc
// @Summary Record a dividend
// @Description Record a dividend payment received in an account
// @Tags dividends
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Param   dividend  body    dto.CreateDividendRequest   true    "Dividend to record"
// @Success 201 {object} dto.DividendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/dividends [post]
func (h *DividendHandler) CreateDividend(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	var req dto.CreateDividendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.dividendService.CreateDividend(c.Request().Context(), accountID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetDividendsByAccount godoc
// @Summary List dividends
// @Description List the dividends recorded in an account, newest first
// @Tags dividends
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {array} dto.DividendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/dividends [get]
func (h *DividendHandler) GetDividendsByAccount(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	dividends, err := h.dividendService.GetDividendsByAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dividends)
}

// GetDividendSummary godoc
// @Summary Summarize dividends
// @Description Per-ticker dividend totals for an account
// @Tags dividends
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {object} dto.DividendSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/dividends/summary [get]
func (h *DividendHandler) GetDividendSummary(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	summary, err := h.dividendService.GetDividendSummary(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// DeleteDividend godoc
// @Summary Delete a dividend record
// @Description Remove a recorded dividend payment
// @Tags dividends
// @Produce  json
// @Param   id  path    int true    "Dividend ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Router /dividends/{id} [delete]
func (h *DividendHandler) DeleteDividend(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid dividend ID"})
	}

	if err := h.dividendService.DeleteDividend(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
