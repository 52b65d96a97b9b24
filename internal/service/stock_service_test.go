package service

import (
	"context"
	"testing"
	"time"

	"tradeback/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStockRejectsDuplicateCode(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.StockService.Create(context.Background(), &dto.CreateStockRequest{Code: "600000", Name: "SPDB"})
	require.NoError(t, err)

	_, err = env.services.StockService.Create(context.Background(), &dto.CreateStockRequest{Code: "600000", Name: "duplicate"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteStockRefusedWhileReferenced(t *testing.T) {
	env := newTestEnv()

	stock, err := env.services.StockService.Create(context.Background(), &dto.CreateStockRequest{Code: "600000", Name: "SPDB"})
	require.NoError(t, err)

	backtest := createBacktest(t, env, 100000)
	fee := 5.30
	addTrade(t, env, backtest.ID, buyRequest("600000", 10.00, 100, &fee, time.Now()))

	err = env.services.StockService.Delete(context.Background(), stock.ID)
	require.ErrorIs(t, err, ErrValidation)

	// still there
	_, err = env.services.StockService.Get(context.Background(), stock.ID)
	require.NoError(t, err)
}

func TestDeleteStockWithoutReferences(t *testing.T) {
	env := newTestEnv()

	stock, err := env.services.StockService.Create(context.Background(), &dto.CreateStockRequest{Code: "600000", Name: "SPDB"})
	require.NoError(t, err)

	require.NoError(t, env.services.StockService.Delete(context.Background(), stock.ID))

	_, err = env.services.StockService.Get(context.Background(), stock.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStockAppliesPartialFields(t *testing.T) {
	env := newTestEnv()

	stock, err := env.services.StockService.Create(context.Background(), &dto.CreateStockRequest{Code: "600000", Name: "SPDB", Note: "watch"})
	require.NoError(t, err)

	name := "Shanghai Pudong Development Bank"
	updated, err := env.services.StockService.Update(context.Background(), stock.ID, &dto.UpdateStockRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "watch", updated.Note)
	assert.Equal(t, "600000", updated.Code)
}
