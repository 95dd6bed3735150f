package entities

import "time"

// Occupancy is the crop currently recorded for one bay.
// AgeWeeks and PlantDensityPerHa are derived at assignment time; nil means
// the metric could not be computed.
type Occupancy struct {
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
}

// OccupiedBay pairs a coordinate with its occupancy, for map rendering.
type OccupiedBay struct {
	BayCoord
	Occupancy
}
