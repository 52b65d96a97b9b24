package http

import (
	"net/http"

	"tradeback/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktests(base *echo.Group) {
	backtestGroup := base.Group("/backtests")
	backtestGroup.POST("", h.createBacktest)
	backtestGroup.GET("", h.listBacktests)
	backtestGroup.GET("/:id", h.getBacktest)
	backtestGroup.PUT("/:id", h.updateBacktest)
	backtestGroup.DELETE("/:id", h.deleteBacktest)
	backtestGroup.GET("/:id/summary", h.getBacktestSummary)
	backtestGroup.POST("/:id/summary/refresh", h.refreshBacktestSummary)
}

func (h *HttpAPIHandler) createBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CreateBacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	backtest, err := h.service.BacktestService.Create(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "backtest created", backtest))
}

func (h *HttpAPIHandler) listBacktests(c echo.Context) error {
	backtests, err := h.service.BacktestService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", backtests))
}

func (h *HttpAPIHandler) getBacktest(c echo.Context) error {
	backtest, err := h.service.BacktestService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", backtest))
}

func (h *HttpAPIHandler) updateBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.UpdateBacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	backtest, err := h.service.BacktestService.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("backtest updated", backtest))
}

func (h *HttpAPIHandler) deleteBacktest(c echo.Context) error {
	if err := h.service.BacktestService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("backtest deleted", nil))
}

func (h *HttpAPIHandler) getBacktestSummary(c echo.Context) error {
	summary, err := h.service.BacktestService.GetSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", summary))
}

func (h *HttpAPIHandler) refreshBacktestSummary(c echo.Context) error {
	summary, err := h.service.BacktestService.RefreshSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("summary refreshed", summary))
}
