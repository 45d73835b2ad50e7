package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// PositionHandler handles HTTP requests for positions.
type PositionHandler struct {
	positionService service.PositionService
	logger          *logger.Logger
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(positionService service.PositionService, logger *logger.Logger) *PositionHandler {
	return &PositionHandler{positionService: positionService, logger: logger}
}

// RegisterRoutes registers position routes. Creation and listing hang off the
// account; updates and deletes address the position directly.
func (h *PositionHandler) RegisterRoutes(accounts, positions *echo.Group) {
	accounts.POST("/:id/positions", h.CreatePosition)
	accounts.GET("/:id/positions", h.GetPositionsByAccount)
	positions.PUT("/:id", h.UpdatePosition)
	positions.DELETE("/:id", h.DeletePosition)
}

// CreatePosition godoc
// @Summary Add a position
// @Description Add a held position to an account
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Param   position  body    dto.CreatePositionRequest   true    "Position to add"
// @Success 201 {object} dto.PositionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/positions [post]
func (h *PositionHandler) CreatePosition(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	var req dto.CreatePositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.positionService.CreatePosition(c.Request().Context(), accountID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetPositionsByAccount godoc
// @Summary List positions
// @Description List the positions held in an account
// @Tags positions
// @Produce  json
// @Param   id  path    int true    "Account ID"
// @Success 200 {array} dto.PositionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id}/positions [get]
func (h *PositionHandler) GetPositionsByAccount(c echo.Context) error {
	accountID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}

	positions, err := h.positionService.GetPositionsByAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, positions)
}

// UpdatePosition godoc
// @Summary Update a position
// @Description Update a position's quantity or prices
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Position ID"
// @Param   position  body    dto.UpdatePositionRequest   true    "Fields to update"
// @Success 200 {object} dto.PositionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /positions/{id} [put]
func (h *PositionHandler) UpdatePosition(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid position ID"})
	}

	var req dto.UpdatePositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.positionService.UpdatePosition(c.Request().Context(), id, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// DeletePosition godoc
// @Summary Delete a position
// @Description Remove a position from its account
// @Tags positions
// @Produce  json
// @Param   id  path    int true    "Position ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /positions/{id} [delete]
func (h *PositionHandler) DeletePosition(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid position ID"})
	}

	if err := h.positionService.DeletePosition(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
