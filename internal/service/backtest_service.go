package service

import (
	"context"
	"errors"
	"fmt"

	"tradeback/config"
	"tradeback/internal/accounting"
	"tradeback/internal/dto"
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

type BacktestService interface {
	Create(ctx context.Context, req *dto.CreateBacktestRequest) (*model.Backtest, error)
	Get(ctx context.Context, id string) (*model.Backtest, error)
	List(ctx context.Context) ([]model.Backtest, error)
	Update(ctx context.Context, id string, req *dto.UpdateBacktestRequest) (*model.Backtest, error)
	Delete(ctx context.Context, id string) error
	GetSummary(ctx context.Context, id string) (*model.Summary, error)
	RefreshSummary(ctx context.Context, id string) (*model.Summary, error)
}

type backtestService struct {
	cfg   *config.Config
	log   *logger.Logger
	repo  *repository.Repository
	cache cache.Cache
}

func NewBacktestService(cfg *config.Config, log *logger.Logger, repo *repository.Repository, memCache cache.Cache) BacktestService {
	return &backtestService{cfg: cfg, log: log, repo: repo, cache: memCache}
}

func summaryCacheKey(backtestID string) string {
	return "backtest:summary:" + backtestID
}

func (s *backtestService) Create(ctx context.Context, req *dto.CreateBacktestRequest) (*model.Backtest, error) {
	initialCapital := decimal.NewFromFloat(req.InitialCapital)

	backtest := &model.Backtest{
		ID:             uuid.NewString(),
		Name:           req.Name,
		InitialCapital: initialCapital,
		CurrentCapital: initialCapital,
		Status:         model.BacktestStatusActive,
		Summary:        datatypes.NewJSONType(model.EmptySummary(initialCapital)),
		Notes:          req.Notes,
	}

	if req.StrategyID != "" {
		strategy, err := s.repo.StrategyRepo.FindByID(ctx, req.StrategyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: strategy %s does not exist", ErrValidation, req.StrategyID)
			}
			return nil, wrapWrite(err)
		}
		backtest.StrategyID = strategy.ID
		backtest.StrategyName = strategy.Name
	}

	if err := s.repo.BacktestRepo.Insert(ctx, backtest); err != nil {
		return nil, wrapWrite(err)
	}

	s.log.InfoContext(ctx, "backtest created",
		logger.StringField("backtest_id", backtest.ID),
		logger.StringField("name", backtest.Name),
	)
	return backtest, nil
}

func (s *backtestService) Get(ctx context.Context, id string) (*model.Backtest, error) {
	backtest, err := s.repo.BacktestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "backtest", id)
	}
	return backtest, nil
}

func (s *backtestService) List(ctx context.Context) ([]model.Backtest, error) {
	backtests, err := s.repo.BacktestRepo.FindAll(ctx)
	if err != nil {
		return nil, wrapWrite(err)
	}
	return backtests, nil
}

func (s *backtestService) Update(ctx context.Context, id string, req *dto.UpdateBacktestRequest) (*model.Backtest, error) {
	backtest, err := s.repo.BacktestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "backtest", id)
	}

	if req.Name != nil {
		backtest.Name = *req.Name
	}
	if req.Status != nil {
		backtest.Status = model.BacktestStatus(*req.Status)
	}
	if req.Notes != nil {
		backtest.Notes = *req.Notes
	}

	if err := s.repo.BacktestRepo.Update(ctx, backtest); err != nil {
		return nil, wrapWrite(err)
	}
	return backtest, nil
}

// Delete drops the backtest and everything it owns. The children go
// explicitly inside the transaction rather than leaning on the cascade
// alone, the row counts end up in the log either way.
func (s *backtestService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.BacktestRepo.FindByID(ctx, id); err != nil {
		return wrapFind(err, "backtest", id)
	}

	err := s.repo.UnitOfWork.Run(func(opts ...utils.DBOption) error {
		if err := s.repo.TradeRepo.DeleteByBacktest(ctx, id, opts...); err != nil {
			return wrapWrite(err)
		}
		if err := s.repo.PositionRepo.DeleteByBacktest(ctx, id, opts...); err != nil {
			return wrapWrite(err)
		}
		if err := s.repo.BacktestRepo.Delete(ctx, id, opts...); err != nil {
			return wrapWrite(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Delete(summaryCacheKey(id))
	s.log.InfoContext(ctx, "backtest deleted", logger.StringField("backtest_id", id))
	return nil
}

// GetSummary serves the stored summary, with a short-lived cache in
// front of it. Trade mutations invalidate the entry.
func (s *backtestService) GetSummary(ctx context.Context, id string) (*model.Summary, error) {
	if cached, ok := s.cache.Get(summaryCacheKey(id)); ok {
		if summary, ok := cached.(*model.Summary); ok {
			return summary, nil
		}
	}

	backtest, err := s.repo.BacktestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "backtest", id)
	}

	summary := backtest.Summary.Data()
	s.cache.Set(summaryCacheKey(id), &summary, s.cfg.Cache.DefaultExpiration)
	return &summary, nil
}

// RefreshSummary recomputes the summary from the full trade history and
// stores the result, discarding whatever summary was persisted before.
func (s *backtestService) RefreshSummary(ctx context.Context, id string) (*model.Summary, error) {
	backtest, err := s.repo.BacktestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "backtest", id)
	}
	trades, err := s.repo.TradeRepo.FindByBacktest(ctx, id)
	if err != nil {
		return nil, wrapWrite(err)
	}

	summary := accounting.ComputeSummary(trades, backtest.InitialCapital)
	backtest.Summary = datatypes.NewJSONType(summary)
	backtest.CurrentCapital = summary.CurrentCash
	if err := s.repo.BacktestRepo.Update(ctx, backtest); err != nil {
		return nil, wrapWrite(err)
	}

	s.cache.Delete(summaryCacheKey(id))
	return &summary, nil
}
