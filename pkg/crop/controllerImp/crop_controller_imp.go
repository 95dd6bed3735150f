package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"estufas/entities"
	"estufas/pkg/crop"
	"estufas/pkg/crop/repository"
)

type CropCtrl struct{ repo repository.CropRepository }

func New(repo repository.CropRepository) *CropCtrl { return &CropCtrl{repo} }

type cropReq struct {
	RowSpacingM   float64 `json:"row_spacing_m"`
	PlantSpacingM float64 `json:"plant_spacing_m"`
	RowsPerBed    int     `json:"rows_per_bed"`
	CycleWeeks    int     `json:"cycle_weeks"`
	PlantsPerHa   float64 `json:"plants_per_ha"`
}

func (h *CropCtrl) List(c echo.Context) error {
	out, err := h.repo.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Put(c echo.Context) error {
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	p := &entities.CropProfile{
		Name:          c.Param("name"),
		RowSpacingM:   req.RowSpacingM,
		PlantSpacingM: req.PlantSpacingM,
		RowsPerBed:    req.RowsPerBed,
		CycleWeeks:    req.CycleWeeks,
		PlantsPerHa:   req.PlantsPerHa,
	}
	if err := crop.Normalize(p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.repo.Upsert(p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}
