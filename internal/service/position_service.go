package service

import (
	"context"
	"errors"
	"fmt"

	"tradeback/internal/accounting"
	"tradeback/internal/dto"
	"tradeback/internal/model"
	"tradeback/internal/repository"
	"tradeback/pkg/logger"
	"tradeback/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PositionService keeps the persisted position rows in step with the
// trade journal. ApplyTrade advances the book one trade at a time;
// RecalculateFromHistory rebuilds it from scratch after a deletion.
type PositionService interface {
	ApplyTrade(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	RecalculateFromHistory(ctx context.Context, backtestID string, trades []model.Trade, opts ...utils.DBOption) ([]model.Trade, error)
	List(ctx context.Context, backtestID string) ([]model.Position, error)
	Get(ctx context.Context, id string) (*model.Position, error)
	MarkPrice(ctx context.Context, id string, req *dto.MarkPriceRequest) (*model.Position, error)
}

type positionService struct {
	log  *logger.Logger
	repo *repository.Repository
}

func NewPositionService(log *logger.Logger, repo *repository.Repository) PositionService {
	return &positionService{log: log, repo: repo}
}

// ApplyTrade folds one trade into the stored position of its instrument.
// A SELL writes the realized profit back onto the trade; the caller is
// responsible for persisting that trade update in the same transaction.
func (s *positionService) ApplyTrade(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	position, err := s.repo.PositionRepo.FindOne(ctx, trade.BacktestID, trade.StockCode, opts...)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapWrite(err)
	}

	switch {
	case trade.IsBuy():
		if position == nil {
			state := &accounting.PositionState{StockCode: trade.StockCode, StockName: trade.StockName, AvgCost: decimal.Zero}
			state.ApplyBuy(trade.Price, trade.Quantity, trade.Fee)
			position = &model.Position{
				ID:         uuid.NewString(),
				BacktestID: trade.BacktestID,
				StockCode:  trade.StockCode,
				StockName:  trade.StockName,
			}
			fillFromState(position, state)
			if err := s.repo.PositionRepo.Insert(ctx, position, opts...); err != nil {
				return wrapWrite(err)
			}
			return nil
		}
		state := toState(position)
		state.ApplyBuy(trade.Price, trade.Quantity, trade.Fee)
		fillFromState(position, state)
		if err := s.repo.PositionRepo.Update(ctx, position, opts...); err != nil {
			return wrapWrite(err)
		}
		return nil

	case trade.IsSell():
		if position == nil {
			return fmt.Errorf("%w: no open position for %s", ErrValidation, trade.StockCode)
		}
		state := toState(position)
		profit, closed := state.ApplySell(trade.Price, trade.Quantity, trade.Fee)
		trade.Profit = profit
		if closed {
			if err := s.repo.PositionRepo.Delete(ctx, position.ID, opts...); err != nil {
				return wrapWrite(err)
			}
			return nil
		}
		fillFromState(position, state)
		if err := s.repo.PositionRepo.Update(ctx, position, opts...); err != nil {
			return wrapWrite(err)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown trade type %s", ErrValidation, trade.Type)
	}
}

// RecalculateFromHistory throws the stored positions away and replays
// the surviving trades from zero. Every SELL profit is recomputed along
// the way and rewritten where it changed, so the journal and the book
// agree again. The returned slice carries the corrected profits in
// replay order.
func (s *positionService) RecalculateFromHistory(ctx context.Context, backtestID string, trades []model.Trade, opts ...utils.DBOption) ([]model.Trade, error) {
	sorted := accounting.SortTrades(trades)
	book := make(map[string]*accounting.PositionState)

	for i := range sorted {
		t := &sorted[i]
		switch {
		case t.IsBuy():
			state, ok := book[t.StockCode]
			if !ok {
				state = &accounting.PositionState{StockCode: t.StockCode, StockName: t.StockName, AvgCost: decimal.Zero}
				book[t.StockCode] = state
			}
			state.ApplyBuy(t.Price, t.Quantity, t.Fee)
		case t.IsSell():
			state, ok := book[t.StockCode]
			if !ok {
				if !t.Profit.IsZero() {
					t.Profit = decimal.Zero
					if err := s.repo.TradeRepo.Update(ctx, t, opts...); err != nil {
						return nil, wrapWrite(err)
					}
				}
				continue
			}
			profit, closed := state.ApplySell(t.Price, t.Quantity, t.Fee)
			if !profit.Equal(t.Profit) {
				t.Profit = profit
				if err := s.repo.TradeRepo.Update(ctx, t, opts...); err != nil {
					return nil, wrapWrite(err)
				}
			}
			if closed {
				delete(book, t.StockCode)
			}
		}
	}

	if err := s.repo.PositionRepo.DeleteByBacktest(ctx, backtestID, opts...); err != nil {
		return nil, wrapWrite(err)
	}
	for _, state := range book {
		position := &model.Position{
			ID:         uuid.NewString(),
			BacktestID: backtestID,
			StockCode:  state.StockCode,
			StockName:  state.StockName,
		}
		fillFromState(position, state)
		if err := s.repo.PositionRepo.Insert(ctx, position, opts...); err != nil {
			return nil, wrapWrite(err)
		}
	}

	return sorted, nil
}

func (s *positionService) List(ctx context.Context, backtestID string) ([]model.Position, error) {
	if _, err := s.repo.BacktestRepo.FindByID(ctx, backtestID); err != nil {
		return nil, wrapFind(err, "backtest", backtestID)
	}
	positions, err := s.repo.PositionRepo.FindByBacktest(ctx, backtestID)
	if err != nil {
		return nil, wrapWrite(err)
	}
	return positions, nil
}

func (s *positionService) Get(ctx context.Context, id string) (*model.Position, error) {
	position, err := s.repo.PositionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "position", id)
	}
	return position, nil
}

// MarkPrice restates an open position at a caller-supplied market price.
// It touches the unrealized profit only, cash and the summary are not
// affected until the position is actually sold.
func (s *positionService) MarkPrice(ctx context.Context, id string, req *dto.MarkPriceRequest) (*model.Position, error) {
	position, err := s.repo.PositionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "position", id)
	}

	position.MarketPrice = decimal.NewFromFloat(req.MarketPrice)
	position.Profit = position.UnrealizedProfit()
	if err := s.repo.PositionRepo.Update(ctx, position); err != nil {
		return nil, wrapWrite(err)
	}

	s.log.InfoContext(ctx, "position marked",
		logger.StringField("position_id", id),
		logger.StringField("stock_code", position.StockCode),
		logger.Field("market_price", req.MarketPrice),
	)
	return position, nil
}

func toState(p *model.Position) *accounting.PositionState {
	return &accounting.PositionState{
		StockCode: p.StockCode,
		StockName: p.StockName,
		Quantity:  p.Quantity,
		AvgCost:   p.AvgCost,
		LastPrice: p.MarketPrice,
	}
}

func fillFromState(p *model.Position, state *accounting.PositionState) {
	p.Quantity = state.Quantity
	p.AvgCost = state.AvgCost
	p.MarketPrice = state.LastPrice
	p.Profit = state.LastPrice.Sub(state.AvgCost).Mul(decimal.NewFromInt(state.Quantity))
}
