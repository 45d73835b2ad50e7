package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// PlanHandler handles HTTP requests for investment plans.
type PlanHandler struct {
	planService service.PlanService
	logger      *logger.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, logger *logger.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, logger: logger}
}

// RegisterRoutes registers plan routes.
func (h *PlanHandler) RegisterRoutes(accounts, plans *echo.Group) {
	accounts.POST("/:id/plans", h.CreatePlan)
	accounts.GET("/:id/plans", h.GetPlansByAccount)
	plans.PUT("/:id", h.UpdatePlan)
	plans.DELETE("/:id", h.DeletePlan)
}

// CreatePlan godoc
// @Summary Create an investment plan
// @Description Create a recurring DCA or profit-taking plan on an account
// @Tags plans
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Param   plan  body    dto.CreatePlanRequest   true    "Plan to create"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/plans [post]
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	var req dto.CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.planService.CreatePlan(c.Request().Context(), accountID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetPlansByAccount godoc
// @Summary List investment plans
// @Description List the investment plans on an account
// @Tags plans
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {array} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/plans [get]
func (h *PlanHandler) GetPlansByAccount(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	plans, err := h.planService.GetPlansByAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, plans)
}

// UpdatePlan godoc
// @Summary Update an investment plan
// @Description Update an investment plan's settings or active flag
// @Tags plans
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Plan ID"
// @Param   plan  body    dto.UpdatePlanRequest   true    "Fields to update"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid plan ID"})
	}

	var req dto.UpdatePlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.planService.UpdatePlan(c.Request().Context(), id, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// DeletePlan godoc
// @Summary Delete an investment plan
// @Description Remove an investment plan from its account
// @Tags plans
// @Produce  json
// @Param   id  path    int true    "Plan ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid plan ID"})
	}

	if err := h.planService.DeletePlan(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
