package repository

import (
	"context"

	"tradeback/internal/model"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

type PositionRepository interface {
	Insert(ctx context.Context, position *model.Position, opts ...utils.DBOption) error
	Update(ctx context.Context, position *model.Position, opts ...utils.DBOption) error
	Delete(ctx context.Context, id string, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Position, error)
	FindOne(ctx context.Context, backtestID, stockCode string, opts ...utils.DBOption) (*model.Position, error)
	FindByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) ([]model.Position, error)
	DeleteByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) error
}

type positionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Insert(ctx context.Context, position *model.Position, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Create(position).Error
}

func (r *positionRepository) Update(ctx context.Context, position *model.Position, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Save(position).Error
}

func (r *positionRepository) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).Delete(&model.Position{}).Error
}

func (r *positionRepository) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Position, error) {
	var position model.Position
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *positionRepository) FindOne(ctx context.Context, backtestID, stockCode string, opts ...utils.DBOption) (*model.Position, error) {
	var position model.Position
	err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).
		Where("backtest_id = ? AND stock_code = ?", backtestID, stockCode).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *positionRepository) FindByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) ([]model.Position, error) {
	var positions []model.Position
	err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).
		Where("backtest_id = ?", backtestID).
		Order("stock_code ASC").
		Find(&positions).Error
	if err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *positionRepository) DeleteByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("backtest_id = ?", backtestID).Delete(&model.Position{}).Error
}
