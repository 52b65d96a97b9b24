package service

import (
	"context"
	"errors"
	"fmt"

	"tradeback/internal/dto"
	"tradeback/internal/model"
	"tradeback/internal/repository"
	"tradeback/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockService interface {
	Create(ctx context.Context, req *dto.CreateStockRequest) (*model.Stock, error)
	Get(ctx context.Context, id string) (*model.Stock, error)
	GetByCode(ctx context.Context, code string) (*model.Stock, error)
	List(ctx context.Context) ([]model.Stock, error)
	Update(ctx context.Context, id string, req *dto.UpdateStockRequest) (*model.Stock, error)
	Delete(ctx context.Context, id string) error
}

type stockService struct {
	log  *logger.Logger
	repo *repository.Repository
}

func NewStockService(log *logger.Logger, repo *repository.Repository) StockService {
	return &stockService{log: log, repo: repo}
}

func (s *stockService) Create(ctx context.Context, req *dto.CreateStockRequest) (*model.Stock, error) {
	if _, err := s.repo.StockRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: stock code %s already exists", ErrValidation, req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapWrite(err)
	}

	stock := &model.Stock{
		ID:   uuid.NewString(),
		Code: req.Code,
		Name: req.Name,
		Note: req.Note,
	}
	if err := s.repo.StockRepo.Insert(ctx, stock); err != nil {
		return nil, wrapWrite(err)
	}

	s.log.InfoContext(ctx, "stock created",
		logger.StringField("stock_id", stock.ID),
		logger.StringField("code", stock.Code),
	)
	return stock, nil
}

func (s *stockService) Get(ctx context.Context, id string) (*model.Stock, error) {
	stock, err := s.repo.StockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "stock", id)
	}
	return stock, nil
}

func (s *stockService) GetByCode(ctx context.Context, code string) (*model.Stock, error) {
	stock, err := s.repo.StockRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, wrapFind(err, "stock", code)
	}
	return stock, nil
}

func (s *stockService) List(ctx context.Context) ([]model.Stock, error) {
	stocks, err := s.repo.StockRepo.FindAll(ctx)
	if err != nil {
		return nil, wrapWrite(err)
	}
	return stocks, nil
}

func (s *stockService) Update(ctx context.Context, id string, req *dto.UpdateStockRequest) (*model.Stock, error) {
	stock, err := s.repo.StockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "stock", id)
	}

	if req.Name != nil {
		stock.Name = *req.Name
	}
	if req.Note != nil {
		stock.Note = *req.Note
	}

	if err := s.repo.StockRepo.Update(ctx, stock); err != nil {
		return nil, wrapWrite(err)
	}
	return stock, nil
}

// Delete refuses while any journal entry still references the code.
// Trades carry the code, not the id, so the guard counts by code.
func (s *stockService) Delete(ctx context.Context, id string) error {
	stock, err := s.repo.StockRepo.FindByID(ctx, id)
	if err != nil {
		return wrapFind(err, "stock", id)
	}

	count, err := s.repo.StockRepo.CountTradesByCode(ctx, stock.Code)
	if err != nil {
		return wrapWrite(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: stock %s is referenced by %d trades", ErrValidation, stock.Code, count)
	}

	if err := s.repo.StockRepo.Delete(ctx, id); err != nil {
		return wrapWrite(err)
	}
	s.log.InfoContext(ctx, "stock deleted",
		logger.StringField("stock_id", id),
		logger.StringField("code", stock.Code),
	)
	return nil
}
