package repository

import (
	"context"

	"github.com/campus-rooms/booking-service/internal/models"
	"gorm.io/gorm"
)

type RuleRepository interface {
	// FindActive returns active rules in creation order. The matcher depends
	// on this ordering: the first matching rule wins.
	FindActive(ctx context.Context, tx *gorm.DB) ([]models.AutoApprovalRule, error)
	FindAll(ctx context.Context) ([]models.AutoApprovalRule, error)
	FindByID(ctx context.Context, id uint) (*models.AutoApprovalRule, error)
	Create(ctx context.Context, rule *models.AutoApprovalRule) error
	Update(ctx context.Context, id uint, updates map[string]any) (*models.AutoApprovalRule, error)
}

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) FindActive(ctx context.Context, tx *gorm.DB) ([]models.AutoApprovalRule, error) {
	var rules []models.AutoApprovalRule
	err := tx.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) FindAll(ctx context.Context) ([]models.AutoApprovalRule, error) {
	var rules []models.AutoApprovalRule
	err := r.db.WithContext(ctx).
		Preload("Organization").Preload("Room").Preload("User").
		Order("created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) FindByID(ctx context.Context, id uint) (*models.AutoApprovalRule, error) {
	var rule models.AutoApprovalRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Create(ctx context.Context, rule *models.AutoApprovalRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.AutoApprovalRule, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.AutoApprovalRule{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
