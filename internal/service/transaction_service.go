package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradeback/config"
	"tradeback/internal/accounting"
	"tradeback/internal/dto"
	"tradeback/internal/fees"
	"tradeback/internal/model"
	"tradeback/internal/repository"
	"tradeback/pkg/cache"
	"tradeback/pkg/logger"
	"tradeback/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TradeService owns the journal mutations. Adding or deleting a trade is
// never just a row change: the position book moves, SELL profits are
// restated and the backtest summary is replaced, all inside one
// transaction.
type TradeService interface {
	AddTrade(ctx context.Context, backtestID string, req *dto.AddTradeRequest) (*model.Trade, error)
	DeleteTrade(ctx context.Context, backtestID, tradeID string) error
	ListTrades(ctx context.Context, backtestID string) ([]model.Trade, error)
	GetTrade(ctx context.Context, backtestID, tradeID string) (*model.Trade, error)
}

type tradeService struct {
	cfg         *config.Config
	log         *logger.Logger
	repo        *repository.Repository
	positionSvc PositionService
	cache       cache.Cache
}

func NewTradeService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	positionSvc PositionService,
	memCache cache.Cache,
) TradeService {
	return &tradeService{
		cfg:         cfg,
		log:         log,
		repo:        repo,
		positionSvc: positionSvc,
		cache:       memCache,
	}
}

// AddTrade journals one BUY or SELL. The amount is always price times
// quantity; a missing fee is priced from the fee schedule. A SELL
// against an instrument with no open position is rejected before
// anything is written.
func (s *tradeService) AddTrade(ctx context.Context, backtestID string, req *dto.AddTradeRequest) (*model.Trade, error) {
	backtest, err := s.repo.BacktestRepo.FindByID(ctx, backtestID)
	if err != nil {
		return nil, wrapFind(err, "backtest", backtestID)
	}

	price := decimal.NewFromFloat(req.Price)
	amount := price.Mul(decimal.NewFromInt(req.Quantity))

	var fee decimal.Decimal
	switch {
	case req.Fee != nil:
		fee = decimal.NewFromFloat(*req.Fee).Round(2)
	case model.TradeType(req.Type) == model.TradeTypeBuy:
		fee = fees.BuyFee(amount)
	default:
		fee = fees.SellFee(amount)
	}

	timestamp := time.Now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	trade := &model.Trade{
		ID:         uuid.NewString(),
		BacktestID: backtestID,
		StockCode:  req.StockCode,
		StockName:  req.StockName,
		Type:       model.TradeType(req.Type),
		Price:      price,
		Quantity:   req.Quantity,
		Amount:     amount,
		Fee:        fee,
		Timestamp:  timestamp,
		Profit:     decimal.Zero,
		Reason:     req.Reason,
		Notes:      req.Notes,
	}

	err = s.repo.UnitOfWork.Run(func(opts ...utils.DBOption) error {
		if trade.IsSell() {
			if _, err := s.repo.PositionRepo.FindOne(ctx, backtestID, trade.StockCode, opts...); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: no open position for %s", ErrValidation, trade.StockCode)
				}
				return wrapWrite(err)
			}
		}

		if err := s.repo.TradeRepo.Insert(ctx, trade, opts...); err != nil {
			return wrapWrite(err)
		}
		if err := s.positionSvc.ApplyTrade(ctx, trade, opts...); err != nil {
			return err
		}
		if trade.IsSell() {
			// ApplyTrade wrote the realized profit onto the trade.
			if err := s.repo.TradeRepo.Update(ctx, trade, opts...); err != nil {
				return wrapWrite(err)
			}
		}

		return s.refreshSummary(ctx, backtest, opts...)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(summaryCacheKey(backtestID))
	s.log.InfoContext(ctx, "trade added",
		logger.StringField("backtest_id", backtestID),
		logger.StringField("trade_id", trade.ID),
		logger.StringField("type", string(trade.Type)),
		logger.StringField("stock_code", trade.StockCode),
	)
	return trade, nil
}

// DeleteTrade removes one journal entry and rebuilds everything the
// entry influenced: downstream SELL profits, the position book and the
// summary are all recomputed from the surviving history.
func (s *tradeService) DeleteTrade(ctx context.Context, backtestID, tradeID string) error {
	backtest, err := s.repo.BacktestRepo.FindByID(ctx, backtestID)
	if err != nil {
		return wrapFind(err, "backtest", backtestID)
	}
	trade, err := s.repo.TradeRepo.FindByID(ctx, tradeID)
	if err != nil {
		return wrapFind(err, "trade", tradeID)
	}
	if trade.BacktestID != backtestID {
		return fmt.Errorf("%w: trade %s", ErrNotFound, tradeID)
	}

	err = s.repo.UnitOfWork.Run(func(opts ...utils.DBOption) error {
		if err := s.repo.TradeRepo.Delete(ctx, tradeID, opts...); err != nil {
			return wrapWrite(err)
		}

		remaining, err := s.repo.TradeRepo.FindByBacktest(ctx, backtestID, opts...)
		if err != nil {
			return wrapWrite(err)
		}
		corrected, err := s.positionSvc.RecalculateFromHistory(ctx, backtestID, remaining, opts...)
		if err != nil {
			return err
		}

		summary := accounting.ComputeSummary(corrected, backtest.InitialCapital)
		return s.persistSummary(ctx, backtest, summary, opts...)
	})
	if err != nil {
		return err
	}

	s.cache.Delete(summaryCacheKey(backtestID))
	s.log.InfoContext(ctx, "trade deleted",
		logger.StringField("backtest_id", backtestID),
		logger.StringField("trade_id", tradeID),
	)
	return nil
}

func (s *tradeService) ListTrades(ctx context.Context, backtestID string) ([]model.Trade, error) {
	if _, err := s.repo.BacktestRepo.FindByID(ctx, backtestID); err != nil {
		return nil, wrapFind(err, "backtest", backtestID)
	}
	trades, err := s.repo.TradeRepo.FindByBacktest(ctx, backtestID)
	if err != nil {
		return nil, wrapWrite(err)
	}
	return trades, nil
}

func (s *tradeService) GetTrade(ctx context.Context, backtestID, tradeID string) (*model.Trade, error) {
	trade, err := s.repo.TradeRepo.FindByID(ctx, tradeID)
	if err != nil {
		return nil, wrapFind(err, "trade", tradeID)
	}
	if trade.BacktestID != backtestID {
		return nil, fmt.Errorf("%w: trade %s", ErrNotFound, tradeID)
	}
	return trade, nil
}

// refreshSummary recomputes the summary from every trade currently in
// the transaction's view and writes it onto the backtest.
func (s *tradeService) refreshSummary(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error {
	trades, err := s.repo.TradeRepo.FindByBacktest(ctx, backtest.ID, opts...)
	if err != nil {
		return wrapWrite(err)
	}
	summary := accounting.ComputeSummary(trades, backtest.InitialCapital)
	return s.persistSummary(ctx, backtest, summary, opts...)
}

func (s *tradeService) persistSummary(ctx context.Context, backtest *model.Backtest, summary model.Summary, opts ...utils.DBOption) error {
	backtest.Summary = datatypes.NewJSONType(summary)
	backtest.CurrentCapital = summary.CurrentCash
	if err := s.repo.BacktestRepo.Update(ctx, backtest, opts...); err != nil {
		return wrapWrite(err)
	}
	return nil
}
