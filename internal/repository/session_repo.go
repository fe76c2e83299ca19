package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campus-rooms/booking-service/internal/models"
	"gorm.io/gorm"
)

var ErrSessionInvalid = errors.New("session is invalid or expired")

type SessionRepository interface {
	// ResolveUser maps a session token to its user, with organization
	// memberships preloaded. Expired sessions and disabled users resolve to
	// ErrSessionInvalid.
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", token).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		r.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", token)
		return nil, ErrSessionInvalid
	}

	var user models.User
	err = r.db.WithContext(ctx).
		Preload("Organizations").
		First(&user, session.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, err
	}
	if !user.Status {
		return nil, ErrSessionInvalid
	}

	return &user, nil
}
