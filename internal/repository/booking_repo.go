package repository

import (
	"context"
	"time"

	"github.com/campus-rooms/booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Booking, error)
	FindActiveByRoomID(ctx context.Context, roomID uint) ([]models.Booking, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus, remark *string) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").Preload("Organization").Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").Preload("Organization").Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindActiveByRoomID(ctx context.Context, roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status NOT IN ?", roomID, models.InactiveStatuses).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOverlapping returns non-cancelled, non-rejected bookings for the room
// whose [start_time, end_time) interval overlaps [start, end). The SQL
// mirrors timerange.Overlaps. excludeID, when non-zero, leaves one booking
// out of the check so it can be re-validated against its neighbours.
func (r *bookingRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).
		Where("room_id = ? AND status NOT IN ?", roomID, models.InactiveStatuses).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus, remark *string) error {
	updates := map[string]any{"status": status}
	if remark != nil {
		updates["remark"] = *remark
	}
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(updates).Error
}
