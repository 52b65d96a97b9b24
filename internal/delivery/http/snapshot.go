package http

import (
	"net/http"

	"tradeback/internal/dto"
	"tradeback/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSnapshot(base *echo.Group) {
	snapshotGroup := base.Group("/snapshot")
	snapshotGroup.GET("/export", h.exportSnapshot)
	snapshotGroup.POST("/import", h.importSnapshot)
}

func (h *HttpAPIHandler) exportSnapshot(c echo.Context) error {
	snapshot, err := h.service.SnapshotService.Export(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *HttpAPIHandler) importSnapshot(c echo.Context) error {
	ctx := c.Request().Context()

	snapshot := new(model.Snapshot)
	if err := c.Bind(snapshot); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid snapshot body"))
	}

	if err := h.service.SnapshotService.Import(ctx, snapshot); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("snapshot imported", nil))
}
