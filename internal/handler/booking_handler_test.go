package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pxkrit/box-office/internal/dto"
	"github.com/pxkrit/box-office/internal/models"
	"github.com/pxkrit/box-office/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	confirmFn func(ctx context.Context, holdID, paymentToken string) (*models.Booking, error)
	getFn     func(ctx context.Context, id string) (*models.Booking, error)
}

func (m *mockBookingService) ConfirmBooking(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
	return m.confirmFn(ctx, holdID, paymentToken)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.getFn(ctx, id)
}

func newBookingContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestConfirmBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		confirmFn: func(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
			assert.Equal(t, "hold-1", holdID)
			assert.Equal(t, "tok-abc", paymentToken)
			return &models.Booking{ID: "book-1", HoldID: holdID, PaymentToken: paymentToken}, nil
		},
	}

	c, rec := newBookingContext(t, `{"hold_id":"hold-1","payment_token":"tok-abc"}`)
	h := NewBookingHandler(svc)

	assert.NoError(t, h.ConfirmBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "book-1", resp.BookingID)
}

func TestConfirmBooking_Handler_IdempotentReplaySameID(t *testing.T) {
	svc := &mockBookingService{
		confirmFn: func(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
			return &models.Booking{ID: "book-1", HoldID: holdID, PaymentToken: paymentToken}, nil
		},
	}

	h := NewBookingHandler(svc)
	var ids []string
	for i := 0; i < 2; i++ {
		c, rec := newBookingContext(t, `{"hold_id":"hold-1","payment_token":"tok-abc"}`)
		assert.NoError(t, h.ConfirmBooking(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp dto.BookingResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		ids = append(ids, resp.BookingID)
	}
	assert.Equal(t, ids[0], ids[1])
}

func TestConfirmBooking_Handler_MissingFields(t *testing.T) {
	for _, body := range []string{
		`{"payment_token":"tok-abc"}`,
		`{"hold_id":"hold-1"}`,
		`{}`,
	} {
		c, _ := newBookingContext(t, body)
		h := NewBookingHandler(nil)

		err := h.ConfirmBooking(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestConfirmBooking_Handler_HoldNotFound(t *testing.T) {
	svc := &mockBookingService{
		confirmFn: func(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
			return nil, service.ErrHoldNotFound
		},
	}

	c, _ := newBookingContext(t, `{"hold_id":"missing","payment_token":"tok"}`)
	h := NewBookingHandler(svc)

	err := h.ConfirmBooking(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestConfirmBooking_Handler_InvalidToken(t *testing.T) {
	svc := &mockBookingService{
		confirmFn: func(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
			return nil, service.ErrInvalidToken
		},
	}

	c, _ := newBookingContext(t, `{"hold_id":"hold-1","payment_token":"wrong"}`)
	h := NewBookingHandler(svc)

	err := h.ConfirmBooking(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestConfirmBooking_Handler_ExpiredOrBooked(t *testing.T) {
	for _, svcErr := range []error{service.ErrHoldExpired, service.ErrHoldAlreadyBooked} {
		err := svcErr
		svc := &mockBookingService{
			confirmFn: func(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
				return nil, err
			},
		}

		c, _ := newBookingContext(t, `{"hold_id":"hold-1","payment_token":"tok"}`)
		h := NewBookingHandler(svc)

		herr := h.ConfirmBooking(c)
		he, ok := herr.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
		// One client-visible condition for both causes.
		assert.Equal(t, "hold has expired or is already booked", he.Message)
	}
}

func TestGetBooking_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	h := NewBookingHandler(svc)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
