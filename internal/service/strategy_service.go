package service

import (
	"context"

	"tradeback/internal/dto"
	"tradeback/internal/model"
	"tradeback/internal/repository"
	"tradeback/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StrategyService interface {
	Create(ctx context.Context, req *dto.CreateStrategyRequest) (*model.Strategy, error)
	Get(ctx context.Context, id string) (*model.Strategy, error)
	List(ctx context.Context) ([]model.Strategy, error)
	Update(ctx context.Context, id string, req *dto.UpdateStrategyRequest) (*model.Strategy, error)
	Delete(ctx context.Context, id string) error
}

type strategyService struct {
	log  *logger.Logger
	repo *repository.Repository
}

func NewStrategyService(log *logger.Logger, repo *repository.Repository) StrategyService {
	return &strategyService{log: log, repo: repo}
}

func (s *strategyService) Create(ctx context.Context, req *dto.CreateStrategyRequest) (*model.Strategy, error) {
	strategy := &model.Strategy{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Rules:       datatypes.NewJSONSlice(req.Rules),
	}
	if err := s.repo.StrategyRepo.Insert(ctx, strategy); err != nil {
		return nil, wrapWrite(err)
	}

	s.log.InfoContext(ctx, "strategy created",
		logger.StringField("strategy_id", strategy.ID),
		logger.StringField("name", strategy.Name),
	)
	return strategy, nil
}

func (s *strategyService) Get(ctx context.Context, id string) (*model.Strategy, error) {
	strategy, err := s.repo.StrategyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "strategy", id)
	}
	return strategy, nil
}

func (s *strategyService) List(ctx context.Context) ([]model.Strategy, error) {
	strategies, err := s.repo.StrategyRepo.FindAll(ctx)
	if err != nil {
		return nil, wrapWrite(err)
	}
	return strategies, nil
}

func (s *strategyService) Update(ctx context.Context, id string, req *dto.UpdateStrategyRequest) (*model.Strategy, error) {
	strategy, err := s.repo.StrategyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFind(err, "strategy", id)
	}

	if req.Name != nil {
		strategy.Name = *req.Name
	}
	if req.Description != nil {
		strategy.Description = *req.Description
	}
	if req.Rules != nil {
		strategy.Rules = datatypes.NewJSONSlice(*req.Rules)
	}

	if err := s.repo.StrategyRepo.Update(ctx, strategy); err != nil {
		return nil, wrapWrite(err)
	}
	return strategy, nil
}

// Delete removes the strategy only. Backtests that referenced it keep
// their denormalized strategy name and go on unaffected.
func (s *strategyService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.StrategyRepo.FindByID(ctx, id); err != nil {
		return wrapFind(err, "strategy", id)
	}
	if err := s.repo.StrategyRepo.Delete(ctx, id); err != nil {
		return wrapWrite(err)
	}
	s.log.InfoContext(ctx, "strategy deleted", logger.StringField("strategy_id", id))
	return nil
}
