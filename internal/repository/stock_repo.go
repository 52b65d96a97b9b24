package repository

import (
	"context"

	"tradeback/internal/model"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

type StockRepository interface {
	Insert(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error
	Update(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error
	Delete(ctx context.Context, id string, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Stock, error)
	FindByCode(ctx context.Context, code string, opts ...utils.DBOption) (*model.Stock, error)
	FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Stock, error)
	CountTradesByCode(ctx context.Context, code string, opts ...utils.DBOption) (int64, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Insert(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Create(stock).Error
}

func (r *stockRepository) Update(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Save(stock).Error
}

func (r *stockRepository) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).Delete(&model.Stock{}).Error
}

func (r *stockRepository) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Stock, error) {
	var stock model.Stock
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("id = ?", id).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) FindByCode(ctx context.Context, code string, opts ...utils.DBOption) (*model.Stock, error) {
	var stock model.Stock
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Where("code = ?", code).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Stock, error) {
	var stocks []model.Stock
	if err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).Order("code ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stockRepository) CountTradesByCode(ctx context.Context, code string, opts ...utils.DBOption) (int64, error) {
	var count int64
	err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).
		Model(&model.Trade{}).
		Where("stock_code = ?", code).
		Count(&count).Error
	return count, err
}
