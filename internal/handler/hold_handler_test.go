package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pxkrit/box-office/internal/dto"
	"github.com/pxkrit/box-office/internal/models"
	"github.com/pxkrit/box-office/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock HoldService ---

type mockHoldService struct {
	createFn func(ctx context.Context, eventID string, quantity int) (*models.Hold, error)
}

func (m *mockHoldService) CreateHold(ctx context.Context, eventID string, quantity int) (*models.Hold, error) {
	return m.createFn(ctx, eventID, quantity)
}

func newHoldContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestCreateHold_Handler_Success(t *testing.T) {
	expiry := time.Now().Add(2 * time.Minute)
	svc := &mockHoldService{
		createFn: func(ctx context.Context, eventID string, quantity int) (*models.Hold, error) {
			assert.Equal(t, "3f1d2a9e-0000-0000-0000-000000000001", eventID)
			assert.Equal(t, 4, quantity)
			return &models.Hold{
				ID:           "8c9b0000-0000-0000-0000-000000000001",
				EventID:      eventID,
				Quantity:     quantity,
				PaymentToken: "tok-abc",
				ExpiresAt:    expiry,
			}, nil
		},
	}

	c, rec := newHoldContext(t, `{"event_id":"3f1d2a9e-0000-0000-0000-000000000001","qty":4}`)
	h := NewHoldHandler(svc)

	assert.NoError(t, h.CreateHold(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.HoldResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "8c9b0000-0000-0000-0000-000000000001", resp.HoldID)
	assert.Equal(t, "tok-abc", resp.PaymentToken)
	assert.WithinDuration(t, expiry, resp.ExpiresAt, time.Second)
}

func TestCreateHold_Handler_MissingEventID(t *testing.T) {
	c, _ := newHoldContext(t, `{"qty":4}`)
	h := NewHoldHandler(nil)

	err := h.CreateHold(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateHold_Handler_NonPositiveQuantity(t *testing.T) {
	for _, body := range []string{
		`{"event_id":"e1","qty":0}`,
		`{"event_id":"e1","qty":-3}`,
	} {
		c, _ := newHoldContext(t, body)
		h := NewHoldHandler(nil)

		err := h.CreateHold(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestCreateHold_Handler_EventNotFound(t *testing.T) {
	svc := &mockHoldService{
		createFn: func(ctx context.Context, eventID string, quantity int) (*models.Hold, error) {
			return nil, service.ErrEventNotFound
		},
	}

	c, _ := newHoldContext(t, `{"event_id":"missing","qty":1}`)
	h := NewHoldHandler(svc)

	err := h.CreateHold(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateHold_Handler_InsufficientCapacity(t *testing.T) {
	svc := &mockHoldService{
		createFn: func(ctx context.Context, eventID string, quantity int) (*models.Hold, error) {
			return nil, service.ErrInsufficientCapacity
		},
	}

	c, _ := newHoldContext(t, `{"event_id":"e1","qty":7}`)
	h := NewHoldHandler(svc)

	err := h.CreateHold(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}
