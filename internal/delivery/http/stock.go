package http

import (
	"net/http"

	"tradeback/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	stockGroup := base.Group("/stocks")
	stockGroup.POST("", h.createStock)
	stockGroup.GET("", h.listStocks)
	stockGroup.GET("/:id", h.getStock)
	stockGroup.PUT("/:id", h.updateStock)
	stockGroup.DELETE("/:id", h.deleteStock)
}

func (h *HttpAPIHandler) createStock(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CreateStockRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	stock, err := h.service.StockService.Create(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "stock created", stock))
}

func (h *HttpAPIHandler) listStocks(c echo.Context) error {
	stocks, err := h.service.StockService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", stocks))
}

func (h *HttpAPIHandler) getStock(c echo.Context) error {
	stock, err := h.service.StockService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", stock))
}

func (h *HttpAPIHandler) updateStock(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.UpdateStockRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	stock, err := h.service.StockService.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("stock updated", stock))
}

func (h *HttpAPIHandler) deleteStock(c echo.Context) error {
	if err := h.service.StockService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("stock deleted", nil))
}
