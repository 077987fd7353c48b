package repository

import (
	"context"
	"time"

	"github.com/pxkrit/box-office/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HoldRepository interface {
	Create(ctx context.Context, tx *gorm.DB, hold *models.Hold) error
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Hold, error)
	SumActive(ctx context.Context, tx *gorm.DB, eventID string, now time.Time) (int64, error)
	SumBooked(ctx context.Context, tx *gorm.DB, eventID string) (int64, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	GetDB() *gorm.DB
}

type holdRepository struct {
	db *gorm.DB
}

func NewHoldRepository(db *gorm.DB) HoldRepository {
	return &holdRepository{db: db}
}

func (r *holdRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *holdRepository) Create(ctx context.Context, tx *gorm.DB, hold *models.Hold) error {
	return tx.WithContext(ctx).Create(hold).Error
}

// FindByIDForUpdate locks the hold row so that confirmation and the expiry
// sweep cannot interleave on the same hold.
func (r *holdRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Hold, error) {
	var hold models.Hold
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&hold, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hold, nil
}

// SumActive totals the quantities of holds that still count against capacity:
// not flagged expired, deadline in the future and not yet booked. The time
// predicate is checked alongside the flag so a lagging sweep never inflates
// the held count.
func (r *holdRepository) SumActive(ctx context.Context, tx *gorm.DB, eventID string, now time.Time) (int64, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.Hold{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("event_id = ? AND is_expired = false AND expires_at > ?", eventID, now).
		Where("id NOT IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&models.Booking{}).Select("hold_id")).
		Scan(&total).Error
	return total, err
}

// SumBooked totals the quantities of this event's holds that have been
// converted to bookings.
func (r *holdRepository) SumBooked(ctx context.Context, tx *gorm.DB, eventID string) (int64, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.Hold{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("event_id = ?", eventID).
		Where("id IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&models.Booking{}).Select("hold_id")).
		Scan(&total).Error
	return total, err
}

// ExpireOverdue flips every overdue unbooked hold to expired in one
// set-oriented update. Booked holds are excluded — a hold is never both
// expired and booked. Re-running it is a no-op for already-flagged rows, so
// overlapping or retried sweeps are harmless.
func (r *holdRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Hold{}).
		Where("expires_at <= ? AND is_expired = false", now).
		Where("id NOT IN (?)", r.db.Session(&gorm.Session{NewDB: true}).Model(&models.Booking{}).Select("hold_id")).
		Update("is_expired", true)
	return res.RowsAffected, res.Error
}
