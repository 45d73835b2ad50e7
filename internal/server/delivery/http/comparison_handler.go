package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// ComparisonHandler handles HTTP requests for rebalancing comparisons.
type ComparisonHandler struct {
	comparisonService service.ComparisonService
	logger            *logger.Logger
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(comparisonService service.ComparisonService, logger *logger.Logger) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService, logger: logger}
}

// RegisterRoutes registers comparison routes onto the accounts group.
func (h *ComparisonHandler) RegisterRoutes(accounts *echo.Group) {
	accounts.GET("/:id/comparison", h.GetComparison)
	accounts.GET("/:id/insights", h.GetInsights)
}

// GetComparison godoc
// @Summary Compare holdings against targets
// @Description Compare an account's holdings against its target allocations. Pass view=missing for targets with no held position.
// @Tags comparison
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Param   view  query   string false   "Set to 'missing' to list unheld targets only"
// @Success 200 {object} dto.ComparisonResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/comparison [get]
func (h *ComparisonHandler) GetComparison(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	ctx := c.Request().Context()
	switch c.QueryParam("view") {
	case "":
		resp, err := h.comparisonService.Compare(ctx, accountID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	case "missing":
		resp, err := h.comparisonService.CompareMissing(ctx, accountID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown view"})
	}
}

// GetInsights godoc
// @Summary Generate comparison commentary
// @Description Generate narrative commentary on an account's comparison report
// @Tags comparison
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {object} dto.InsightsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /accounts/{id}/insights [get]
func (h *ComparisonHandler) GetInsights(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	resp, err := h.comparisonService.GenerateInsights(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
