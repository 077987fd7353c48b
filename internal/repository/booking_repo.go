package repository

import (
	"context"

	"github.com/pxkrit/box-office/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByHoldAndToken(ctx context.Context, tx *gorm.DB, holdID, token string) (*models.Booking, error)
	FindByHoldID(ctx context.Context, tx *gorm.DB, holdID string) (*models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByHoldAndToken(ctx context.Context, tx *gorm.DB, holdID, token string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("hold_id = ? AND payment_token = ?", holdID, token).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByHoldID(ctx context.Context, tx *gorm.DB, holdID string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).Where("hold_id = ?", holdID).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}
