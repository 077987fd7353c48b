package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pxkrit/box-office/internal/models"
	"github.com/pxkrit/box-office/internal/repository"
	"github.com/pxkrit/box-office/pkg/rabbitmq"
)

var ErrEventNotFound = errors.New("event not found")

// Availability is the capacity snapshot for one event, recomputed from the
// store on every call and never cached.
type Availability struct {
	Total     int
	Available int
	Held      int
	Booked    int
}

type EventService interface {
	CreateEvent(ctx context.Context, name string, totalSeats int) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetAvailability(ctx context.Context, eventID string) (*Availability, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	holdRepo  repository.HoldRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(eventRepo repository.EventRepository, holdRepo repository.HoldRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{
		eventRepo: eventRepo,
		holdRepo:  holdRepo,
		publisher: publisher,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, name string, totalSeats int) (*models.Event, error) {
	event := &models.Event{
		Name:       name,
		TotalSeats: totalSeats,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}

	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

// GetAvailability recomputes the ledger for one event: seats held by active
// holds, seats booked, and what remains of total_seats.
func (s *eventService) GetAvailability(ctx context.Context, eventID string) (*Availability, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	db := s.holdRepo.GetDB()
	now := time.Now().UTC()

	held, err := s.holdRepo.SumActive(ctx, db, eventID, now)
	if err != nil {
		return nil, fmt.Errorf("sum active holds: %w", err)
	}
	booked, err := s.holdRepo.SumBooked(ctx, db, eventID)
	if err != nil {
		return nil, fmt.Errorf("sum booked holds: %w", err)
	}

	return &Availability{
		Total:     event.TotalSeats,
		Available: event.TotalSeats - int(held) - int(booked),
		Held:      int(held),
		Booked:    int(booked),
	}, nil
}
