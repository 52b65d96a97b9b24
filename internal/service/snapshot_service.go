package service

import (
	"context"
	"fmt"

	"tradeback/internal/accounting"
	"tradeback/internal/model"
	"tradeback/internal/repository"
	"tradeback/pkg/cache"
	"tradeback/pkg/logger"
	"tradeback/pkg/utils"

	"gorm.io/datatypes"
)

// SnapshotService moves the whole database in and out as one document.
// Import is a full overwrite: whatever was stored before the import is
// gone afterwards.
type SnapshotService interface {
	Export(ctx context.Context) (*model.Snapshot, error)
	Import(ctx context.Context, snapshot *model.Snapshot) error
}

type snapshotService struct {
	log   *logger.Logger
	repo  *repository.Repository
	cache cache.Cache
}

func NewSnapshotService(log *logger.Logger, repo *repository.Repository, memCache cache.Cache) SnapshotService {
	return &snapshotService{log: log, repo: repo, cache: memCache}
}

func (s *snapshotService) Export(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := s.repo.SnapshotRepo.Export(ctx)
	if err != nil {
		return nil, wrapWrite(err)
	}
	return snapshot, nil
}

// Import replaces everything with the snapshot's contents, then
// recomputes each backtest's summary from the imported trades. Snapshots
// written by older builds may carry summaries the current formulas no
// longer agree with, recomputing settles that.
func (s *snapshotService) Import(ctx context.Context, snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: empty snapshot", ErrValidation)
	}

	err := s.repo.UnitOfWork.Run(func(opts ...utils.DBOption) error {
		if err := s.repo.SnapshotRepo.Restore(ctx, snapshot, opts...); err != nil {
			return wrapWrite(err)
		}

		for i := range snapshot.Backtests {
			backtest := &snapshot.Backtests[i]
			trades, err := s.repo.TradeRepo.FindByBacktest(ctx, backtest.ID, opts...)
			if err != nil {
				return wrapWrite(err)
			}
			summary := accounting.ComputeSummary(trades, backtest.InitialCapital)
			backtest.Summary = datatypes.NewJSONType(summary)
			backtest.CurrentCapital = summary.CurrentCash
			if err := s.repo.BacktestRepo.Update(ctx, backtest, opts...); err != nil {
				return wrapWrite(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Flush()
	s.log.InfoContext(ctx, "snapshot imported",
		logger.IntField("backtests", len(snapshot.Backtests)),
		logger.IntField("trades", len(snapshot.Trades)),
	)
	return nil
}
