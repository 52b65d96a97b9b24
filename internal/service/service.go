package service

import (
	"tradeback/config"
	"tradeback/internal/repository"
	"tradeback/pkg/cache"
	"tradeback/pkg/logger"
)

type Service struct {
	StrategyService StrategyService
	StockService    StockService
	BacktestService BacktestService
	TradeService    TradeService
	PositionService PositionService
	SnapshotService SnapshotService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	memCache cache.Cache,
) *Service {
	positionService := NewPositionService(log, repo)
	backtestService := NewBacktestService(cfg, log, repo, memCache)
	tradeService := NewTradeService(cfg, log, repo, positionService, memCache)
	strategyService := NewStrategyService(log, repo)
	stockService := NewStockService(log, repo)
	snapshotService := NewSnapshotService(log, repo, memCache)

	return &Service{
		StrategyService: strategyService,
		StockService:    stockService,
		BacktestService: backtestService,
		TradeService:    tradeService,
		PositionService: positionService,
		SnapshotService: snapshotService,
	}
}
