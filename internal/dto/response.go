package dto

import (
	"time"

	"github.com/pxkrit/box-office/internal/models"
	"github.com/pxkrit/box-office/internal/service"
)

type EventResponse struct {
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	TotalSeats int       `json:"total_seats"`
	CreatedAt  time.Time `json:"created_at"`
}

type EventStatusResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Held      int `json:"held"`
	Booked    int `json:"booked"`
}

type HoldResponse struct {
	HoldID       string    `json:"hold_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	PaymentToken string    `json:"payment_token"`
}

type BookingResponse struct {
	BookingID string `json:"booking_id"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		EventID:    e.ID,
		Name:       e.Name,
		TotalSeats: e.TotalSeats,
		CreatedAt:  e.CreatedAt,
	}
}

func ToEventStatusResponse(a *service.Availability) EventStatusResponse {
	return EventStatusResponse{
		Total:     a.Total,
		Available: a.Available,
		Held:      a.Held,
		Booked:    a.Booked,
	}
}

func ToHoldResponse(h *models.Hold) HoldResponse {
	return HoldResponse{
		HoldID:       h.ID,
		ExpiresAt:    h.ExpiresAt,
		PaymentToken: h.PaymentToken,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{BookingID: b.ID}
}
