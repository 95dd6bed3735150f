package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"estufas/pkg/block"
)

type BlockCtrl struct{ reg *block.Registry }

func New(reg *block.Registry) *BlockCtrl { return &BlockCtrl{reg} }

func (h *BlockCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reg.Blocks())
}

func (h *BlockCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
	}
	b, err := h.reg.Get(id)
	if errors.Is(err, block.ErrBlockNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, b)
}
