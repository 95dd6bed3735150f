package block

import (
	"fmt"

	"estufas/entities"
	"estufas/pkg/sheet"
)

// Kibala site defaults.
const (
	DefaultBlockCount = 16
	DefaultBaysPerBlk = 22
	DefaultBayAreaHa  = 0.06
)

// DefaultLayout returns the built-in layout used when no layout file is set.
func DefaultLayout() []entities.Block {
	out := make([]entities.Block, 0, DefaultBlockCount)
	for id := 1; id <= DefaultBlockCount; id++ {
		out = append(out, entities.Block{
			BlockID:     id,
			BayCount:    DefaultBaysPerBlk,
			BayAreaHa:   DefaultBayAreaHa,
			TotalAreaHa: float64(DefaultBaysPerBlk) * DefaultBayAreaHa,
		})
	}
	return out
}

// LoadLayout reads blocks from a CSV or XLSX table with columns
// block, bays, bay_area_ha and optionally total_area_ha.
func LoadLayout(path string) ([]entities.Block, error) {
	t, err := sheet.Read(path)
	if err != nil {
		return nil, err
	}
	cID := t.Col("block", "block_id", "bloco")
	cBays := t.Col("bays", "bay_count", "naves", "nº naves")
	cArea := t.Col("bay_area_ha", "bay_area", "área/nave (ha)", "area_nave")
	cTotal := t.Col("total_area_ha", "total_area", "área total (ha)", "area_total")
	if cID == -1 || cBays == -1 || cArea == -1 {
		return nil, fmt.Errorf("%s: missing required columns. Found headers: %v\nNeed at least: block, bays, bay_area_ha", path, t.Header)
	}

	var out []entities.Block
	for i, row := range t.Rows {
		if sheet.Cell(row, cID) == "" {
			continue
		}
		id, err := sheet.Int(row, cID)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: block: %w", path, i+2, err)
		}
		bays, err := sheet.Int(row, cBays)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bays: %w", path, i+2, err)
		}
		area, err := sheet.Float(row, cArea)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bay_area_ha: %w", path, i+2, err)
		}
		b := entities.Block{BlockID: id, BayCount: bays, BayAreaHa: area}
		if sheet.Cell(row, cTotal) != "" {
			if total, err := sheet.Float(row, cTotal); err == nil {
				b.TotalAreaHa = total
			}
		}
		out = append(out, b)
	}
	return out, nil
}
