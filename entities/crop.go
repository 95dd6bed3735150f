package entities

import "time"

// CropProfile holds the default agronomic parameters of a crop.
type CropProfile struct {
	Name          string  `gorm:"primaryKey" json:"name"`
	RowSpacingM   float64 `json:"row_spacing_m"`
	PlantSpacingM float64 `json:"plant_spacing_m"`
	RowsPerBed    int     `json:"rows_per_bed"`
	CycleWeeks    int     `json:"cycle_weeks"`
	PlantsPerHa   float64 `json:"plants_per_ha"` // reference value typed by the agronomist

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
