package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"estufas/entities"
	"estufas/pkg/block"
	"estufas/pkg/inventory"
	"estufas/pkg/inventory/controller"
	"estufas/pkg/inventory/service"
	"estufas/pkg/middleware"
)

type InventoryCtrl struct{ s service.InventoryService }

func New(s service.InventoryService) controller.InventoryController { return &InventoryCtrl{s} }

type selectReq struct {
	BlockID  int   `json:"block_id"`
	Bay      int   `json:"bay"`
	Selected *bool `json:"selected"`
}

type assignReq struct {
	Year          int                 `json:"year"`
	Week          int                 `json:"week"`
	CropName      string              `json:"crop_name"`
	Color         string              `json:"color"`
	PlantingDate  string              `json:"planting_date"`
	RowSpacingM   *float64            `json:"row_spacing_m"`
	PlantSpacingM *float64            `json:"plant_spacing_m"`
	RowsPerBed    *int                `json:"rows_per_bed"`
	BlockRowCount *int                `json:"block_row_count"`
	Observations  *string             `json:"observations"`
	Bays          []entities.BayCoord `json:"bays"`
}

func (h *InventoryCtrl) Select(c echo.Context) error {
	var req selectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	selected := req.Selected == nil || *req.Selected
	sess := middleware.SessionOf(c)
	if err := h.s.Toggle(sess, entities.BayCoord{BlockID: req.BlockID, Bay: req.Bay}, selected); err != nil {
		return errorJSON(c, err)
	}
	return h.ListSelection(c)
}

func (h *InventoryCtrl) ListSelection(c echo.Context) error {
	sess := middleware.SessionOf(c)
	resp := echo.Map{"bays": sess.Selection()}
	if last, ok := sess.LastSelected(); ok {
		resp["last_block_id"] = last.BlockID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *InventoryCtrl) ClearSelection(c echo.Context) error {
	middleware.SessionOf(c).ClearSelection()
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryCtrl) Assign(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	in := service.AssignRequest{
		Year: req.Year, Week: req.Week,
		CropName: req.CropName, Color: req.Color,
		RowSpacingM: req.RowSpacingM, PlantSpacingM: req.PlantSpacingM, RowsPerBed: req.RowsPerBed,
		BlockRowCount: req.BlockRowCount, Observations: req.Observations,
		Bays: req.Bays,
	}
	if req.PlantingDate != "" {
		pd, err := time.Parse("2006-01-02", req.PlantingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "planting_date must be YYYY-MM-DD"})
		}
		in.PlantingDate = &pd
	}
	recs, err := h.s.Assign(middleware.SessionOf(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"records": recs, "bays_by_block": inventory.TotalBays(recs)})
}

func (h *InventoryCtrl) ListOccupancy(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.SessionOf(c).Occupied())
}

func (h *InventoryCtrl) GetOccupancy(c echo.Context) error {
	bc, err := coordParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	o, ok := middleware.SessionOf(c).Occupancy(bc)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bay is empty"})
	}
	return c.JSON(http.StatusOK, entities.OccupiedBay{BayCoord: bc, Occupancy: o})
}

func (h *InventoryCtrl) RemoveOccupancy(c echo.Context) error {
	bc, err := coordParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !middleware.SessionOf(c).RemoveOccupancy(bc) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bay is empty"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryCtrl) Inventory(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Inventory(middleware.SessionOf(c)))
}

func (h *InventoryCtrl) Export(c echo.Context) error {
	snap := h.s.Inventory(middleware.SessionOf(c))
	name := fmt.Sprintf("inventario_%d_S%02d", snap.Year, snap.Week)

	var buf bytes.Buffer
	switch strings.ToLower(c.QueryParam("format")) {
	case "", "csv":
		if err := inventory.WriteCSV(&buf, snap.Records); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`.csv"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := inventory.WriteXLSX(&buf, snap.Records); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`.xlsx"`)
		return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "format must be csv or xlsx"})
	}
}

func coordParam(c echo.Context) (entities.BayCoord, error) {
	blk, err := strconv.Atoi(c.Param("block"))
	if err != nil {
		return entities.BayCoord{}, errors.New("invalid block")
	}
	bay, err := strconv.Atoi(c.Param("bay"))
	if err != nil {
		return entities.BayCoord{}, errors.New("invalid bay")
	}
	return entities.BayCoord{BlockID: blk, Bay: bay}, nil
}

func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, inventory.ErrEmptySelection),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, block.ErrInvalidBay):
		status = http.StatusBadRequest
	case errors.Is(err, block.ErrBlockNotFound):
		status = http.StatusNotFound
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
