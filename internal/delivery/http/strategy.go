package http

import (
	"net/http"

	"tradeback/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStrategies(base *echo.Group) {
	strategyGroup := base.Group("/strategies")
	strategyGroup.POST("", h.createStrategy)
	strategyGroup.GET("", h.listStrategies)
	strategyGroup.GET("/:id", h.getStrategy)
	strategyGroup.PUT("/:id", h.updateStrategy)
	strategyGroup.DELETE("/:id", h.deleteStrategy)
}

func (h *HttpAPIHandler) createStrategy(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CreateStrategyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	strategy, err := h.service.StrategyService.Create(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "strategy created", strategy))
}

func (h *HttpAPIHandler) listStrategies(c echo.Context) error {
	strategies, err := h.service.StrategyService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", strategies))
}

func (h *HttpAPIHandler) getStrategy(c echo.Context) error {
	strategy, err := h.service.StrategyService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", strategy))
}

func (h *HttpAPIHandler) updateStrategy(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.UpdateStrategyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	strategy, err := h.service.StrategyService.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("strategy updated", strategy))
}

func (h *HttpAPIHandler) deleteStrategy(c echo.Context) error {
	if err := h.service.StrategyService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("strategy deleted", nil))
}
