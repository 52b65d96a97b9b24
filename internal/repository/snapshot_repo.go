package repository

import (
	"context"
	"time"

	"tradeback/internal/model"
	"tradeback/pkg/logger"
	"tradeback/pkg/utils"

	"gorm.io/gorm"
)

// SnapshotRepository bulk-reads and bulk-writes every collection at once.
// Restore truncates before inserting: a snapshot replaces the whole
// database, it is never merged into it.
type SnapshotRepository interface {
	Export(ctx context.Context, opts ...utils.DBOption) (*model.Snapshot, error)
	Restore(ctx context.Context, snapshot *model.Snapshot, opts ...utils.DBOption) error
}

type snapshotRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSnapshotRepository(db *gorm.DB, log *logger.Logger) SnapshotRepository {
	return &snapshotRepository{db: db, log: log}
}

func (r *snapshotRepository) Export(ctx context.Context, opts ...utils.DBOption) (*model.Snapshot, error) {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)
	snapshot := &model.Snapshot{ExportedAt: time.Now()}

	if err := db.Order("created_at ASC").Find(&snapshot.Strategies).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&snapshot.Backtests).Error; err != nil {
		return nil, err
	}
	if err := db.Order("timestamp ASC, created_at ASC").Find(&snapshot.Trades).Error; err != nil {
		return nil, err
	}
	if err := db.Order("backtest_id ASC, stock_code ASC").Find(&snapshot.Positions).Error; err != nil {
		return nil, err
	}
	if err := db.Order("code ASC").Find(&snapshot.Stocks).Error; err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *snapshotRepository) Restore(ctx context.Context, snapshot *model.Snapshot, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)

	// Children first so the backtest cascade never races the inserts.
	for _, m := range []interface{}{&model.Trade{}, &model.Position{}, &model.Backtest{}, &model.Strategy{}, &model.Stock{}} {
		if err := db.Where("1 = 1").Delete(m).Error; err != nil {
			return err
		}
	}

	if len(snapshot.Strategies) > 0 {
		if err := db.Create(&snapshot.Strategies).Error; err != nil {
			return err
		}
	}
	if len(snapshot.Stocks) > 0 {
		if err := db.Create(&snapshot.Stocks).Error; err != nil {
			return err
		}
	}
	if len(snapshot.Backtests) > 0 {
		if err := db.Create(&snapshot.Backtests).Error; err != nil {
			return err
		}
	}
	if len(snapshot.Trades) > 0 {
		if err := db.CreateInBatches(&snapshot.Trades, 500).Error; err != nil {
			return err
		}
	}
	if len(snapshot.Positions) > 0 {
		if err := db.CreateInBatches(&snapshot.Positions, 500).Error; err != nil {
			return err
		}
	}

	r.log.InfoContext(ctx, "snapshot restored",
		logger.IntField("strategies", len(snapshot.Strategies)),
		logger.IntField("backtests", len(snapshot.Backtests)),
		logger.IntField("trades", len(snapshot.Trades)),
		logger.IntField("positions", len(snapshot.Positions)),
		logger.IntField("stocks", len(snapshot.Stocks)),
	)
	return nil
}
