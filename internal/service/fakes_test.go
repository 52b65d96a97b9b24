package service

import (
	"context"
	"time"

	"tradeback/config"
	"tradeback/internal/accounting"
	"tradeback/internal/model"
	"tradeback/internal/repository"
	"tradeback/pkg/cache"
	"tradeback/pkg/logger"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories. They keep value copies
// so a caller mutating a returned row without calling Update changes
// nothing, same as with a real database.

type fakeUnitOfWork struct{}

func (f *fakeUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	return fn()
}

type fakeBacktestRepo struct {
	items map[string]model.Backtest
}

func newFakeBacktestRepo() *fakeBacktestRepo {
	return &fakeBacktestRepo{items: make(map[string]model.Backtest)}
}

func (r *fakeBacktestRepo) Insert(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error {
	r.items[backtest.ID] = *backtest
	return nil
}

func (r *fakeBacktestRepo) Update(ctx context.Context, backtest *model.Backtest, opts ...utils.DBOption) error {
	if _, ok := r.items[backtest.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[backtest.ID] = *backtest
	return nil
}

func (r *fakeBacktestRepo) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	delete(r.items, id)
	return nil
}

func (r *fakeBacktestRepo) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Backtest, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeBacktestRepo) FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Backtest, error) {
	out := make([]model.Backtest, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeTradeRepo struct {
	items map[string]model.Trade
}

func newFakeTradeRepo() *fakeTradeRepo {
	return &fakeTradeRepo{items: make(map[string]model.Trade)}
}

func (r *fakeTradeRepo) Insert(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now()
	}
	r.items[trade.ID] = *trade
	return nil
}

func (r *fakeTradeRepo) Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	if _, ok := r.items[trade.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[trade.ID] = *trade
	return nil
}

func (r *fakeTradeRepo) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	delete(r.items, id)
	return nil
}

func (r *fakeTradeRepo) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Trade, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeTradeRepo) FindByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) ([]model.Trade, error) {
	out := make([]model.Trade, 0)
	for _, item := range r.items {
		if item.BacktestID == backtestID {
			out = append(out, item)
		}
	}
	return accounting.SortTrades(out), nil
}

func (r *fakeTradeRepo) DeleteByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) error {
	for id, item := range r.items {
		if item.BacktestID == backtestID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakePositionRepo struct {
	items map[string]model.Position
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{items: make(map[string]model.Position)}
}

func (r *fakePositionRepo) Insert(ctx context.Context, position *model.Position, opts ...utils.DBOption) error {
	r.items[position.ID] = *position
	return nil
}

func (r *fakePositionRepo) Update(ctx context.Context, position *model.Position, opts ...utils.DBOption) error {
	if _, ok := r.items[position.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[position.ID] = *position
	return nil
}

func (r *fakePositionRepo) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	delete(r.items, id)
	return nil
}

func (r *fakePositionRepo) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Position, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakePositionRepo) FindOne(ctx context.Context, backtestID, stockCode string, opts ...utils.DBOption) (*model.Position, error) {
	for _, item := range r.items {
		if item.BacktestID == backtestID && item.StockCode == stockCode {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePositionRepo) FindByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) ([]model.Position, error) {
	out := make([]model.Position, 0)
	for _, item := range r.items {
		if item.BacktestID == backtestID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakePositionRepo) DeleteByBacktest(ctx context.Context, backtestID string, opts ...utils.DBOption) error {
	for id, item := range r.items {
		if item.BacktestID == backtestID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeStrategyRepo struct {
	items map[string]model.Strategy
}

func newFakeStrategyRepo() *fakeStrategyRepo {
	return &fakeStrategyRepo{items: make(map[string]model.Strategy)}
}

func (r *fakeStrategyRepo) Insert(ctx context.Context, strategy *model.Strategy, opts ...utils.DBOption) error {
	r.items[strategy.ID] = *strategy
	return nil
}

func (r *fakeStrategyRepo) Update(ctx context.Context, strategy *model.Strategy, opts ...utils.DBOption) error {
	if _, ok := r.items[strategy.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[strategy.ID] = *strategy
	return nil
}

func (r *fakeStrategyRepo) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	delete(r.items, id)
	return nil
}

func (r *fakeStrategyRepo) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Strategy, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeStrategyRepo) FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Strategy, error) {
	out := make([]model.Strategy, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeStockRepo struct {
	items  map[string]model.Stock
	trades *fakeTradeRepo
}

func newFakeStockRepo(trades *fakeTradeRepo) *fakeStockRepo {
	return &fakeStockRepo{items: make(map[string]model.Stock), trades: trades}
}

func (r *fakeStockRepo) Insert(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error {
	r.items[stock.ID] = *stock
	return nil
}

func (r *fakeStockRepo) Update(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error {
	if _, ok := r.items[stock.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[stock.ID] = *stock
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	delete(r.items, id)
	return nil
}

func (r *fakeStockRepo) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Stock, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeStockRepo) FindByCode(ctx context.Context, code string, opts ...utils.DBOption) (*model.Stock, error) {
	for _, item := range r.items {
		if item.Code == code {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStockRepo) FindAll(ctx context.Context, opts ...utils.DBOption) ([]model.Stock, error) {
	out := make([]model.Stock, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeStockRepo) CountTradesByCode(ctx context.Context, code string, opts ...utils.DBOption) (int64, error) {
	var count int64
	for _, item := range r.trades.items {
		if item.StockCode == code {
			count++
		}
	}
	return count, nil
}

type fakeSnapshotRepo struct {
	strategies *fakeStrategyRepo
	backtests  *fakeBacktestRepo
	trades     *fakeTradeRepo
	positions  *fakePositionRepo
	stocks     *fakeStockRepo
}

func (r *fakeSnapshotRepo) Export(ctx context.Context, opts ...utils.DBOption) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{ExportedAt: time.Now()}
	for _, item := range r.strategies.items {
		snapshot.Strategies = append(snapshot.Strategies, item)
	}
	for _, item := range r.backtests.items {
		snapshot.Backtests = append(snapshot.Backtests, item)
	}
	for _, item := range r.trades.items {
		snapshot.Trades = append(snapshot.Trades, item)
	}
	for _, item := range r.positions.items {
		snapshot.Positions = append(snapshot.Positions, item)
	}
	for _, item := range r.stocks.items {
		snapshot.Stocks = append(snapshot.Stocks, item)
	}
	return snapshot, nil
}

func (r *fakeSnapshotRepo) Restore(ctx context.Context, snapshot *model.Snapshot, opts ...utils.DBOption) error {
	r.strategies.items = make(map[string]model.Strategy)
	r.backtests.items = make(map[string]model.Backtest)
	r.trades.items = make(map[string]model.Trade)
	r.positions.items = make(map[string]model.Position)
	r.stocks.items = make(map[string]model.Stock)

	for _, item := range snapshot.Strategies {
		r.strategies.items[item.ID] = item
	}
	for _, item := range snapshot.Backtests {
		r.backtests.items[item.ID] = item
	}
	for _, item := range snapshot.Trades {
		r.trades.items[item.ID] = item
	}
	for _, item := range snapshot.Positions {
		r.positions.items[item.ID] = item
	}
	for _, item := range snapshot.Stocks {
		r.stocks.items[item.ID] = item
	}
	return nil
}

type testEnv struct {
	services  *Service
	backtests *fakeBacktestRepo
	trades    *fakeTradeRepo
	positions *fakePositionRepo
	stocks    *fakeStockRepo
}

func newTestEnv() *testEnv {
	trades := newFakeTradeRepo()
	backtests := newFakeBacktestRepo()
	positions := newFakePositionRepo()
	strategies := newFakeStrategyRepo()
	stocks := newFakeStockRepo(trades)

	repo := &repository.Repository{
		StrategyRepo: strategies,
		StockRepo:    stocks,
		BacktestRepo: backtests,
		TradeRepo:    trades,
		PositionRepo: positions,
		SnapshotRepo: &fakeSnapshotRepo{
			strategies: strategies,
			backtests:  backtests,
			trades:     trades,
			positions:  positions,
			stocks:     stocks,
		},
		UnitOfWork: &fakeUnitOfWork{},
	}

	cfg := &config.Config{
		Cache: config.Cache{DefaultExpiration: time.Minute, CleanupInterval: time.Minute},
	}
	services := NewService(cfg, logger.NewNop(), repo, cache.NewCache(time.Minute, time.Minute))

	return &testEnv{
		services:  services,
		backtests: backtests,
		trades:    trades,
		positions: positions,
		stocks:    stocks,
	}
}
