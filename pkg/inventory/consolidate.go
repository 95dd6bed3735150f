// Package inventory turns per-bay occupancy into the weekly inventory: runs of
// consecutive bays in a block with identical agronomic parameters become one
// record.
package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"estufas/entities"
	"estufas/pkg/agronomy"
	"estufas/pkg/block"
	"estufas/pkg/occupancy"
)

var (
	ErrEmptySelection = errors.New("no bays selected")
	// ErrUnknownBlock means the occupancy store and the block registry have
	// diverged. It is an internal fault, not a caller error.
	ErrUnknownBlock = errors.New("occupancy references unknown block")
)

// Assignment is the crop data applied to every selected bay.
type Assignment struct {
	Year          int
	Week          int
	CropName      string
	Color         string
	PlantingDate  *time.Time
	RowSpacingM   float64
	PlantSpacingM float64
	RowsPerBed    int
	BlockRowCount *int
	Observations  *string
}

// Occupancy builds the bay record for a, deriving age and density against
// a.Year/a.Week.
func (a Assignment) Occupancy() entities.Occupancy {
	o := entities.Occupancy{
		CropName:      a.CropName,
		Color:         a.Color,
		RowSpacingM:   a.RowSpacingM,
		PlantSpacingM: a.PlantSpacingM,
		RowsPerBed:    a.RowsPerBed,
	}
	if a.PlantingDate != nil {
		d := time.Date(a.PlantingDate.Year(), a.PlantingDate.Month(), a.PlantingDate.Day(), 0, 0, 0, 0, time.UTC)
		o.PlantingDate = &d
	}
	if a.BlockRowCount != nil {
		n := *a.BlockRowCount
		o.BlockRowCount = &n
	}
	if a.Observations != nil {
		s := *a.Observations
		o.Observations = &s
	}
	if age, ok := agronomy.AgeWeeks(o.PlantingDate, a.Year, a.Week); ok {
		o.AgeWeeks = &age
	}
	if dens, ok := agronomy.PlantDensity(a.RowSpacingM, a.PlantSpacingM, a.RowsPerBed); ok {
		o.PlantDensityPerHa = &dens
	}
	return o
}

// Engine applies assignments and rebuilds the consolidated inventory.
type Engine struct {
	reg    *block.Registry
	labels Labels
}

func NewEngine(reg *block.Registry, labels Labels) *Engine {
	if labels == (Labels{}) {
		labels = DefaultLabels
	}
	return &Engine{reg: reg, labels: labels}
}

func (e *Engine) Registry() *block.Registry { return e.reg }

// Apply writes a to every bay in sel, rebuilds the inventory from store and
// clears sel. With an empty selection nothing is touched.
func (e *Engine) Apply(a Assignment, sel *occupancy.Selection, store *occupancy.Store) ([]entities.InventoryRecord, error) {
	if sel.Len() == 0 {
		return nil, ErrEmptySelection
	}
	if err := e.checkStore(store); err != nil {
		return nil, err
	}

	rec := a.Occupancy()
	for _, c := range sel.Snapshot() {
		store.Upsert(c, rec)
	}

	out, err := e.Consolidate(store, a.Year, a.Week)
	if err != nil {
		return nil, err
	}
	sel.Clear()
	return out, nil
}

func (e *Engine) checkStore(store *occupancy.Store) error {
	for c := range store.All() {
		if _, err := e.reg.Get(c.BlockID); err != nil {
			return fmt.Errorf("bay %d/%d: %w", c.BlockID, c.Bay, ErrUnknownBlock)
		}
	}
	return nil
}

// Consolidate groups the occupied bays of every block, in registry order,
// into inventory records stamped with year/week.
func (e *Engine) Consolidate(store *occupancy.Store, year, week int) ([]entities.InventoryRecord, error) {
	if err := e.checkStore(store); err != nil {
		return nil, err
	}
	var out []entities.InventoryRecord
	for _, id := range e.reg.IDs() {
		blk, _ := e.reg.Get(id)
		bays := store.Block(id)
		if len(bays) == 0 {
			continue
		}

		rep, _ := store.Get(entities.BayCoord{BlockID: id, Bay: bays[0]})
		members := []int{bays[0]}
		for _, bay := range bays[1:] {
			cur, _ := store.Get(entities.BayCoord{BlockID: id, Bay: bay})
			if bay == members[len(members)-1]+1 && sameCrop(rep, cur) {
				members = append(members, bay)
				continue
			}
			out = append(out, e.record(blk, rep, members, year, week))
			rep, members = cur, []int{bay}
		}
		out = append(out, e.record(blk, rep, members, year, week))
	}
	return out, nil
}

func (e *Engine) record(b entities.Block, rep entities.Occupancy, members []int, year, week int) entities.InventoryRecord {
	total := decimal.NewFromFloat(b.BayAreaHa).Mul(decimal.NewFromInt(int64(len(members))))
	return entities.InventoryRecord{
		BlockID:           b.BlockID,
		BayRangeLabel:     e.labels.Format(members),
		Year:              year,
		Week:              week,
		CropName:          rep.CropName,
		Color:             rep.Color,
		PlantingDate:      rep.PlantingDate,
		RowSpacingM:       rep.RowSpacingM,
		PlantSpacingM:     rep.PlantSpacingM,
		RowsPerBed:        rep.RowsPerBed,
		BlockRowCount:     rep.BlockRowCount,
		Observations:      rep.Observations,
		AgeWeeks:          rep.AgeWeeks,
		PlantDensityPerHa: rep.PlantDensityPerHa,
		BayGroupCount:     len(members),
		BayAreaHa:         b.BayAreaHa,
		TotalAreaGroupHa:  total.InexactFloat64(),
	}
}

// sameCrop compares the agronomic fields only. Color is cosmetic and does
// not split a group; the group keeps the color of its lowest bay.
func sameCrop(a, b entities.Occupancy) bool {
	return a.CropName == b.CropName &&
		sameDate(a.PlantingDate, b.PlantingDate) &&
		a.RowSpacingM == b.RowSpacingM &&
		a.PlantSpacingM == b.PlantSpacingM &&
		a.RowsPerBed == b.RowsPerBed &&
		sameInt(a.BlockRowCount, b.BlockRowCount) &&
		sameString(a.Observations, b.Observations)
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TotalBays sums BayGroupCount per block.
func TotalBays(recs []entities.InventoryRecord) map[int]int {
	out := map[int]int{}
	for _, r := range recs {
		out[r.BlockID] += r.BayGroupCount
	}
	return out
}
