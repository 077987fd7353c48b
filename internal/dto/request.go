package dto

type CreateEventRequest struct {
	Name       string `json:"name"`
	TotalSeats int    `json:"total_seats"`
}

type CreateHoldRequest struct {
	EventID  string `json:"event_id"`
	Quantity int    `json:"qty"`
}

type ConfirmBookingRequest struct {
	HoldID       string `json:"hold_id"`
	PaymentToken string `json:"payment_token"`
}
