package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

// HouseholdHandler handles HTTP requests for households.
type HouseholdHandler struct {
	householdService service.HouseholdService
	logger           *logger.Logger
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(householdService service.HouseholdService, logger *logger.Logger) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService, logger: logger}
}

// RegisterRoutes registers the household routes to the Echo group.
func (h *HouseholdHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateHousehold)
	g.GET("", h.GetAllHouseholds)
	g.GET("/:id", h.GetHouseholdByID)
	g.PUT("/:id", h.UpdateHousehold)
	g.DELETE("/:id", h.DeleteHousehold)
}

// CreateHousehold godoc
// @Summary Create a new household
// @Description Create a new client household
// @Tags households
// @Accept  json
// @Produce  json
// @Param   household  body    dto.CreateHouseholdRequest   true    "Household to create"
// @Success 201 {object} dto.HouseholdResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /households [post]
func (h *HouseholdHandler) CreateHousehold(c echo.Context) error {
	var req dto.CreateHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.householdService.CreateHousehold(c.Request().Context(), &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetAllHouseholds godoc
// @Summary Get all households
// @Description List every client household
// @Tags households
// @Produce  json
// @Success 200 {array} dto.HouseholdResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /households [get]
func (h *HouseholdHandler) GetAllHouseholds(c echo.Context) error {
	households, err := h.householdService.GetAllHouseholds(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all households", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get households"})
	}
	return c.JSON(http.StatusOK, households)
}

// GetHouseholdByID godoc
// @Summary Get a household by ID
// @Description Get a single household with its accounts
// @Tags households
// @Produce  json
// @Param   id  path    int true    "Household ID"
// @Success 200 {object} dto.HouseholdResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /households/{id} [get]
func (h *HouseholdHandler) GetHouseholdByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid household ID"})
	}

	resp, err := h.householdService.GetHouseholdByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateHousehold godoc
// @Summary Update a household
// @Description Update a household's name or primary email
// @Tags households
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Household ID"
// @Param   household  body    dto.UpdateHouseholdRequest   true    "Fields to update"
// @Success 200 {object} dto.HouseholdResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /households/{id} [put]
func (h *HouseholdHandler) UpdateHousehold(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid household ID"})
	}

	var req dto.UpdateHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.householdService.UpdateHousehold(c.Request().Context(), id, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// DeleteHousehold godoc
// @Summary Delete a household
// @Description Delete a household and everything under it
// @Tags households
// @Produce  json
// @Param   id  path    int true    "Household ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /households/{id} [delete]
func (h *HouseholdHandler) DeleteHousehold(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid household ID"})
	}

	if err := h.householdService.DeleteHousehold(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
