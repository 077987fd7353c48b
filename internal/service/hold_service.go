package service

import (
	"context"
	"errors"
	"time"

	"github.com/pxkrit/box-office/internal/models"
	"github.com/pxkrit/box-office/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInsufficientCapacity = errors.New("not enough seats available")
)

const DefaultHoldTTL = 120 * time.Second

type HoldService interface {
	CreateHold(ctx context.Context, eventID string, quantity int) (*models.Hold, error)
}

type holdService struct {
	holdRepo  repository.HoldRepository
	eventRepo repository.EventRepository
	ttl       time.Duration
}

func NewHoldService(holdRepo repository.HoldRepository, eventRepo repository.EventRepository, ttl time.Duration) HoldService {
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}
	return &holdService{
		holdRepo:  holdRepo,
		eventRepo: eventRepo,
		ttl:       ttl,
	}
}

func (s *holdService) CreateHold(ctx context.Context, eventID string, quantity int) (*models.Hold, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var result *models.Hold

	err := s.holdRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row — serializes concurrent hold attempts, hold
		// confirmations and sweeps touching this event.
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// 2. Recompute availability under the lock.
		now := time.Now().UTC()
		held, err := s.holdRepo.SumActive(ctx, tx, eventID, now)
		if err != nil {
			return err
		}
		booked, err := s.holdRepo.SumBooked(ctx, tx, eventID)
		if err != nil {
			return err
		}

		available := event.TotalSeats - int(held) - int(booked)
		if quantity > available {
			return ErrInsufficientCapacity
		}

		// 3. Admit: fresh token, deadline at now + TTL, committed atomically
		// with the check above.
		token, err := newPaymentToken()
		if err != nil {
			return err
		}

		hold := &models.Hold{
			EventID:      eventID,
			Quantity:     quantity,
			PaymentToken: token,
			ExpiresAt:    now.Add(s.ttl),
		}
		if err := s.holdRepo.Create(ctx, tx, hold); err != nil {
			return err
		}

		result = hold
		return nil
	})

	return result, err
}
