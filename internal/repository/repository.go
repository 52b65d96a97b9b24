package repository

import (
	"tradeback/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	StrategyRepo StrategyRepository
	StockRepo    StockRepository
	BacktestRepo BacktestRepository
	TradeRepo    TradeRepository
	PositionRepo PositionRepository
	SnapshotRepo SnapshotRepository
	UnitOfWork   UnitOfWork
}

func NewRepository(db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		StrategyRepo: NewStrategyRepository(db),
		StockRepo:    NewStockRepository(db),
		BacktestRepo: NewBacktestRepository(db),
		TradeRepo:    NewTradeRepository(db),
		PositionRepo: NewPositionRepository(db),
		SnapshotRepo: NewSnapshotRepository(db, log),
		UnitOfWork:   NewUnitOfWork(db),
	}
}
