package handler

import (
	"errors"
	"net/http"

	"github.com/pxkrit/box-office/internal/dto"
	"github.com/pxkrit/box-office/internal/service"
	"github.com/labstack/echo/v4"
)

type HoldHandler struct {
	svc service.HoldService
}

func NewHoldHandler(svc service.HoldService) *HoldHandler {
	return &HoldHandler{svc: svc}
}

func (h *HoldHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/holds", h.CreateHold)
}

func (h *HoldHandler) CreateHold(c echo.Context) error {
	var req dto.CreateHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id is required")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "qty must be greater than zero")
	}

	hold, err := h.svc.CreateHold(c.Request().Context(), req.EventID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidQuantity):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInsufficientCapacity):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToHoldResponse(hold))
}
