package repository

import (
	"context"

	"tradeback/internal/model"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

type StrategyRepository interface {
	Insert(ctx context.Context, strategy *model.Strategy, opts ...utils.DBOption) error
	Update(ctx context.Context, strategy *model.Strategy, opts ...utils.DBOption) error
	Delete(ctx context.Context, id string, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Strategy, error)
	FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Strategy, error)
}

type strategyRepository struct {
	db *gorm.DB
}

func NewStrategyRepository(db *gorm.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) Insert(ctx context.Context, strategy *model.Strategy, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Create(strategy).Error
}

func (r *strategyRepository) Update(ctx context.Context, strategy *model.Strategy, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Save(strategy).Error
}

func (r *strategyRepository) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).Delete(&model.Strategy{}).Error
}

func (r *strategyRepository) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Strategy, error) {
	var strategy model.Strategy
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).First(&strategy).Error; err != nil {
		return nil, err
	}
	return &strategy, nil
}

func (r *strategyRepository) FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Strategy, error) {
	var strategies []model.Strategy
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Order("created_at DESC").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}
