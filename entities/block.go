package entities

// Block is one greenhouse section. Rows are seeded once and never mutated.
type Block struct {
	BlockID     int     `gorm:"primaryKey;autoIncrement:false" json:"block_id"`
	BayCount    int     `json:"bay_count"`
	BayAreaHa   float64 `json:"bay_area_ha"`
	TotalAreaHa float64 `json:"total_area_ha"`
}

// BayCoord addresses a single bay ("nave") inside a block.
type BayCoord struct {
	BlockID int `json:"block_id"`
	Bay     int `json:"bay"`
}
