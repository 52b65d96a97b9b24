package http

import (
	"net/http"

	"tradeback/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTrades(base *echo.Group) {
	tradeGroup := base.Group("/backtests/:backtestId/trades")
	tradeGroup.POST("", h.addTrade)
	tradeGroup.GET("", h.listTrades)
	tradeGroup.GET("/:tradeId", h.getTrade)
	tradeGroup.DELETE("/:tradeId", h.deleteTrade)
}

func (h *HttpAPIHandler) addTrade(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AddTradeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradeService.AddTrade(ctx, c.Param("backtestId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "trade added", trade))
}

func (h *HttpAPIHandler) listTrades(c echo.Context) error {
	trades, err := h.service.TradeService.ListTrades(c.Request().Context(), c.Param("backtestId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", trades))
}

func (h *HttpAPIHandler) getTrade(c echo.Context) error {
	trade, err := h.service.TradeService.GetTrade(c.Request().Context(), c.Param("backtestId"), c.Param("tradeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", trade))
}

func (h *HttpAPIHandler) deleteTrade(c echo.Context) error {
	if err := h.service.TradeService.DeleteTrade(c.Request().Context(), c.Param("backtestId"), c.Param("tradeId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade deleted", nil))
}
