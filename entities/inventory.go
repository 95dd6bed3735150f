package entities

import "time"

// InventoryRecord is one consolidated row of the weekly inventory: a maximal
// run of consecutive bays in a block sharing the same agronomic parameters.
// Field order is the export column order.
type InventoryRecord struct {
	BlockID           int        `json:"block_id"`
	BayRangeLabel     string     `json:"bay_range_label"`
	Year              int        `json:"year"`
	Week              int        `json:"week"`
	CropName          string     `json:"crop_name"`
	Color             string     `json:"color"`
	PlantingDate      *time.Time `json:"planting_date"`
	RowSpacingM       float64    `json:"row_spacing_m"`
	PlantSpacingM     float64    `json:"plant_spacing_m"`
	RowsPerBed        int        `json:"rows_per_bed"`
	BlockRowCount     *int       `json:"block_row_count"`
	Observations      *string    `json:"observations"`
	AgeWeeks          *int       `json:"age_weeks"`
	PlantDensityPerHa *float64   `json:"plant_density_per_ha"`
	BayGroupCount     int        `json:"bay_group_count"`
	BayAreaHa         float64    `json:"bay_area_ha"`
	TotalAreaGroupHa  float64    `json:"total_area_group_ha"`
}
