package handler

import (
	"errors"
	"net/http"

	"github.com/pxkrit/box-office/internal/dto"
	"github.com/pxkrit/box-office/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/bookings", h.ConfirmBooking)
	e.GET("/api/v1/bookings/:id", h.GetBooking)
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	var req dto.ConfirmBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HoldID == "" || req.PaymentToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hold_id and payment_token are required")
	}

	booking, err := h.svc.ConfirmBooking(c.Request().Context(), req.HoldID, req.PaymentToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHoldNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidToken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrHoldExpired), errors.Is(err, service.ErrHoldAlreadyBooked):
			return echo.NewHTTPError(http.StatusConflict, "hold has expired or is already booked")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
