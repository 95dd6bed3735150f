// Package crop keeps the default agronomic parameters per crop.
package crop

import (
	"fmt"
	"strings"

	"estufas/entities"
	"estufas/pkg/sheet"
)

// DefaultCatalog is seeded when the crop_profiles table is empty and no
// CROPS_FILE is configured.
func DefaultCatalog() []entities.CropProfile {
	return []entities.CropProfile{
		{Name: "Tomate", RowSpacingM: 1.20, PlantSpacingM: 0.40, RowsPerBed: 4, CycleWeeks: 14, PlantsPerHa: 83332},
		{Name: "Alface", RowSpacingM: 0.30, PlantSpacingM: 0.25, RowsPerBed: 4, CycleWeeks: 6, PlantsPerHa: 533333},
		{Name: "Feijão-Verde", RowSpacingM: 0.50, PlantSpacingM: 0.20, RowsPerBed: 2, CycleWeeks: 10, PlantsPerHa: 200000},
	}
}

// LoadCatalog reads crop profiles from CSV or XLSX. Column names follow
// either the English field names or the site's Portuguese spreadsheet.
func LoadCatalog(path string) ([]entities.CropProfile, error) {
	t, err := sheet.Read(path)
	if err != nil {
		return nil, err
	}
	cName := t.Col("name", "crop", "cultura")
	cRow := t.Col("row_spacing_m", "espac. linhas (m)", "row_spacing")
	cPlant := t.Col("plant_spacing_m", "espac. plantas (m)", "plant_spacing")
	cRows := t.Col("rows_per_bed", "nº linhas (padrão)", "rows")
	cCycle := t.Col("cycle_weeks", "ciclo (sem)", "cycle")
	cPPH := t.Col("plants_per_ha", "plantas/ha (padrão)")
	if cName == -1 || cRow == -1 || cPlant == -1 || cRows == -1 {
		return nil, fmt.Errorf("%s: missing required columns. Found headers: %v\nNeed at least: name, row_spacing_m, plant_spacing_m, rows_per_bed", path, t.Header)
	}

	var out []entities.CropProfile
	for i, row := range t.Rows {
		name := sheet.Cell(row, cName)
		if name == "" {
			continue
		}
		p := entities.CropProfile{Name: name}
		if p.RowSpacingM, err = sheet.Float(row, cRow); err != nil {
			return nil, fmt.Errorf("%s row %d: row spacing: %w", path, i+2, err)
		}
		if p.PlantSpacingM, err = sheet.Float(row, cPlant); err != nil {
			return nil, fmt.Errorf("%s row %d: plant spacing: %w", path, i+2, err)
		}
		if p.RowsPerBed, err = sheet.Int(row, cRows); err != nil {
			return nil, fmt.Errorf("%s row %d: rows per bed: %w", path, i+2, err)
		}
		// optional columns
		if v, err := sheet.Int(row, cCycle); err == nil {
			p.CycleWeeks = v
		}
		if v, err := sheet.Float(row, cPPH); err == nil {
			p.PlantsPerHa = v
		}
		out = append(out, p)
	}
	return out, nil
}

// Normalize trims the name and rejects profiles that cannot seed an assignment.
func Normalize(p *entities.CropProfile) error {
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		return fmt.Errorf("name is required")
	case p.RowSpacingM < 0, p.PlantSpacingM < 0, p.RowsPerBed < 0, p.CycleWeeks < 0:
		return fmt.Errorf("crop %q: negative parameter", p.Name)
	}
	return nil
}
