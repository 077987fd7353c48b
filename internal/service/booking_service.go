package service

import (
	"context"
	"errors"
	"time"

	"github.com/pxkrit/box-office/internal/models"
	"github.com/pxkrit/box-office/internal/repository"
	"github.com/pxkrit/box-office/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrHoldNotFound      = errors.New("hold not found")
	ErrInvalidToken      = errors.New("invalid payment token")
	ErrHoldExpired       = errors.New("hold has expired")
	ErrHoldAlreadyBooked = errors.New("hold has already been booked")
)

type BookingService interface {
	ConfirmBooking(ctx context.Context, holdID, paymentToken string) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	holdRepo    repository.HoldRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, holdRepo repository.HoldRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		holdRepo:    holdRepo,
		publisher:   publisher,
	}
}

// ConfirmBooking converts a still-valid hold into a booking exactly once.
// Retries with the same (hold, token) pair get the original booking back.
func (s *bookingService) ConfirmBooking(ctx context.Context, holdID, paymentToken string) (*models.Booking, error) {
	var result *models.Booking
	created := false

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Retried request? Return the booking made the first time round.
		existing, err := s.bookingRepo.FindByHoldAndToken(ctx, tx, holdID, paymentToken)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 2. Lock the hold row so a concurrent confirmation or sweep cannot
		// slip between the checks below and the insert.
		hold, err := s.holdRepo.FindByIDForUpdate(ctx, tx, holdID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHoldNotFound
			}
			return err
		}

		// 3. Single comparison against the stored token; a wrong token and a
		// right-token-wrong-hold are indistinguishable to the caller.
		if hold.PaymentToken != paymentToken {
			return ErrInvalidToken
		}

		// 4. Re-check time as well as the flag: the sweep may lag behind the
		// deadline, and a logically-expired hold must not be confirmable.
		if hold.IsExpired || !time.Now().UTC().Before(hold.ExpiresAt) {
			return ErrHoldExpired
		}

		// 5. A racer that committed while we waited for the lock shows up
		// here: same token means this is a replay and we adopt its booking.
		if prior, err := s.bookingRepo.FindByHoldID(ctx, tx, holdID); err == nil {
			if prior.PaymentToken == paymentToken {
				result = prior
				return nil
			}
			return ErrHoldAlreadyBooked
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		booking := &models.Booking{
			HoldID:       holdID,
			PaymentToken: paymentToken,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			// Lost the insert race. The unique index on hold_id guarantees a
			// winner exists; adopt it when the tokens match.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				winner, ferr := s.bookingRepo.FindByHoldAndToken(ctx, tx, holdID, paymentToken)
				if ferr == nil {
					result = winner
					return nil
				}
				if errors.Is(ferr, gorm.ErrRecordNotFound) {
					return ErrHoldAlreadyBooked
				}
				return ferr
			}
			return err
		}

		result = booking
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created && s.publisher != nil {
		_ = s.publisher.Publish("booking.confirmed", map[string]string{
			"booking_id": result.ID,
			"hold_id":    result.HoldID,
		})
	}

	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
