package http

import (
	"net/http"

	"tradeback/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPositions(base *echo.Group) {
	base.GET("/backtests/:backtestId/positions", h.listPositions)

	positionGroup := base.Group("/positions")
	positionGroup.GET("/:id", h.getPosition)
	positionGroup.PUT("/:id/price", h.markPositionPrice)
}

func (h *HttpAPIHandler) listPositions(c echo.Context) error {
	positions, err := h.service.PositionService.List(c.Request().Context(), c.Param("backtestId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", positions))
}

func (h *HttpAPIHandler) getPosition(c echo.Context) error {
	position, err := h.service.PositionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", position))
}

func (h *HttpAPIHandler) markPositionPrice(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.MarkPriceRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	position, err := h.service.PositionService.MarkPrice(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("position marked", position))
}
