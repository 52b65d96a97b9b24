package service

import (
	"context"
	"testing"
	"time"

	"tradeback/internal/dto"
	"tradeback/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBacktestStartsEmpty(t *testing.T) {
	env := newTestEnv()

	backtest, err := env.services.BacktestService.Create(context.Background(), &dto.CreateBacktestRequest{
		Name:           "breakout run",
		InitialCapital: 50000,
	})
	require.NoError(t, err)

	assert.Equal(t, model.BacktestStatusActive, backtest.Status)
	assert.True(t, backtest.CurrentCapital.Equal(d("50000")))
	summary := backtest.Summary.Data()
	assert.Zero(t, summary.TotalTrades)
	assert.True(t, summary.CurrentCash.Equal(d("50000")))
}

func TestCreateBacktestDenormalizesStrategyName(t *testing.T) {
	env := newTestEnv()

	strategy, err := env.services.StrategyService.Create(context.Background(), &dto.CreateStrategyRequest{
		Name:  "golden cross",
		Rules: []string{"ma5 crosses above ma20"},
	})
	require.NoError(t, err)

	backtest, err := env.services.BacktestService.Create(context.Background(), &dto.CreateBacktestRequest{
		Name:           "golden cross run",
		StrategyID:     strategy.ID,
		InitialCapital: 100000,
	})
	require.NoError(t, err)
	assert.Equal(t, "golden cross", backtest.StrategyName)
}

func TestCreateBacktestRejectsUnknownStrategy(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.BacktestService.Create(context.Background(), &dto.CreateBacktestRequest{
		Name:           "orphan run",
		StrategyID:     "11111111-1111-1111-1111-111111111111",
		InitialCapital: 100000,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateBacktestAppliesPartialFields(t *testing.T) {
	env := newTestEnv()
	backtest := createBacktest(t, env, 100000)

	status := "completed"
	updated, err := env.services.BacktestService.Update(context.Background(), backtest.ID, &dto.UpdateBacktestRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, model.BacktestStatusCompleted, updated.Status)
	assert.Equal(t, backtest.Name, updated.Name)
}

func TestDeleteBacktestRemovesChildren(t *testing.T) {
	env := newTestEnv()
	backtest := createBacktest(t, env, 100000)
	fee := 5.30
	addTrade(t, env, backtest.ID, buyRequest("600000", 10.00, 100, &fee, time.Now()))

	require.NoError(t, env.services.BacktestService.Delete(context.Background(), backtest.ID))

	_, err := env.services.BacktestService.Get(context.Background(), backtest.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, env.trades.items)
	assert.Empty(t, env.positions.items)
}

func TestGetSummaryServesCachedValueUntilInvalidated(t *testing.T) {
	env := newTestEnv()
	backtest := createBacktest(t, env, 100000)

	first, err := env.services.BacktestService.GetSummary(context.Background(), backtest.ID)
	require.NoError(t, err)
	assert.True(t, first.CurrentCash.Equal(d("100000")))

	fee := 5.30
	addTrade(t, env, backtest.ID, buyRequest("600000", 10.00, 100, &fee, time.Now()))

	second, err := env.services.BacktestService.GetSummary(context.Background(), backtest.ID)
	require.NoError(t, err)
	assert.True(t, second.CurrentCash.Equal(d("99000")), "cash %s", second.CurrentCash)
}

func TestRefreshSummaryRecomputesFromHistory(t *testing.T) {
	env := newTestEnv()
	backtest := createBacktest(t, env, 100000)
	fee := 5.30
	addTrade(t, env, backtest.ID, buyRequest("600000", 10.00, 100, &fee, time.Now()))

	// corrupt the stored summary, the refresh should repair it
	stored, err := env.backtests.FindByID(context.Background(), backtest.ID)
	require.NoError(t, err)
	stored.CurrentCapital = d("1")
	require.NoError(t, env.backtests.Update(context.Background(), stored))

	summary, err := env.services.BacktestService.RefreshSummary(context.Background(), backtest.ID)
	require.NoError(t, err)
	assert.True(t, summary.CurrentCash.Equal(d("99000")), "cash %s", summary.CurrentCash)

	repaired, err := env.services.BacktestService.Get(context.Background(), backtest.ID)
	require.NoError(t, err)
	assert.True(t, repaired.CurrentCapital.Equal(d("99000")))
}
