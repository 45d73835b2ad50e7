package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// AllocationHandler handles HTTP requests for target allocations.
type AllocationHandler struct {
	allocationService service.AllocationService
	logger            *logger.Logger
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationService service.AllocationService, logger *logger.Logger) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService, logger: logger}
}

// RegisterRoutes registers allocation routes.
func (h *AllocationHandler) RegisterRoutes(accounts, allocations *echo.Group) {
	accounts.POST("/:id/allocations", h.CreateAllocation)
	accounts.GET("/:id/allocations", h.GetAllocationsByAccount)
	allocations.PUT("/:id", h.UpdateAllocation)
	allocations.DELETE("/:id", h.DeleteAllocation)
}

// CreateAllocation godoc
// @Summary Add a target allocation
// @Description Add a target weight for a ticker to an account
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Param   allocation  body    dto.CreateAllocationRequest   true    "Allocation to add"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/allocations [post]
func (h *AllocationHandler) CreateAllocation(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	var req dto.CreateAllocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.allocationService.CreateAllocation(c.Request().Context(), accountID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetAllocationsByAccount godoc
// @Summary List target allocations
// @Description List the target allocations for an account
// @Tags allocations
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/allocations [get]
func (h *AllocationHandler) GetAllocationsByAccount(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	allocations, err := h.allocationService.GetAllocationsByAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, allocations)
}

// UpdateAllocation godoc
// @Summary Update a target allocation
// @Description Update a target allocation's ticker, name or percentage
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Allocation ID"
// @Param   allocation  body    dto.UpdateAllocationRequest   true    "Fields to update"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /allocations/{id} [put]
func (h *AllocationHandler) UpdateAllocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid allocation ID"})
	}

	var req dto.UpdateAllocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.allocationService.UpdateAllocation(c.Request().Context(), id, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// DeleteAllocation godoc
// @Summary Delete a target allocation
// @Description Remove a target allocation from its account
// @Tags allocations
// @Produce  json
// @Param   id  path    int true    "Allocation ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /allocations/{id} [delete]
func (h *AllocationHandler) DeleteAllocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid allocation ID"})
	}

	if err := h.allocationService.DeleteAllocation(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
