package repository

import (
	"context"

	"github.com/campus-rooms/booking-service/internal/models"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Organization, error)
	IsMember(ctx context.Context, userID, organizationID uint) (bool, error)
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) IsMember(ctx context.Context, userID, organizationID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_organizations").
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Count(&count).Error
	return count > 0, err
}
