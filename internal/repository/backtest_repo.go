package repository

import (
	"context"

	"tradeback/internal/model"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

type BacktestRepository interface {
	Insert(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error
	Update(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error
	Delete(ctx context.Context, id string, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Backtest, error)
	FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Backtest, error)
}

type backtestRepository struct {
	db *gorm.DB
}

func NewBacktestRepository(db *gorm.DB) BacktestRepository {
	return &backtestRepository{db: db}
}

func (r *backtestRepository) Insert(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Create(backtest).Error
}

func (r *backtestRepository) Update(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Save(backtest).Error
}

func (r *backtestRepository) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).Delete(&model.Backtest{}).Error
}

func (r *backtestRepository) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Backtest, error) {
	var backtest model.Backtest
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).First(&backtest).Error; err != nil {
		return nil, err
	}
	return &backtest, nil
}

func (r *backtestRepository) FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Backtest, error) {
	var backtests []model.Backtest
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Order("created_at DESC").Find(&backtests).Error; err != nil {
		return nil, err
	}
	return backtests, nil
}
