package repository

import (
	"context"

	"tradeback/internal/model"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

type TradeRepository interface {
	Insert(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	Delete(ctx context.Context, id string, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Trade, error)
	FindByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) ([]model.Trade, error)
	DeleteByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) error
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Insert(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Create(trade).Error
}

func (r *tradeRepository) Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Save(trade).Error
}

func (r *tradeRepository) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).Delete(&model.Trade{}).Error
}

func (r *tradeRepository) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Trade, error) {
	var trade model.Trade
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).First(&trade).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) FindByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) ([]model.Trade, error) {
	var trades []model.Trade
	err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).
		Where("backtest_id = ?", backtestID).
		Order("timestamp ASC, created_at ASC, id ASC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) DeleteByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("backtest_id = ?", backtestID).Delete(&model.Trade{}).Error
}
