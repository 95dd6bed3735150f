// Package block holds the static greenhouse layout.
package block

import (
	"errors"
	"fmt"
	"sort"

	"estufas/entities"
)

var (
	ErrBlockNotFound = errors.New("block not found")
	ErrInvalidBay    = errors.New("bay out of range")
)

// Registry is the immutable set of blocks, keyed by id.
type Registry struct {
	blocks map[int]entities.Block
	ids    []int
}

// NewRegistry validates blocks and freezes them. Blocks with a zero
// TotalAreaHa get BayCount * BayAreaHa.
func NewRegistry(blocks []entities.Block) (*Registry, error) {
	r := &Registry{blocks: make(map[int]entities.Block, len(blocks))}
	for _, b := range blocks {
		if b.BlockID <= 0 {
			return nil, fmt.Errorf("block %d: id must be > 0", b.BlockID)
		}
		if _, dup := r.blocks[b.BlockID]; dup {
			return nil, fmt.Errorf("block %d: duplicate id", b.BlockID)
		}
		if b.BayCount <= 0 {
			return nil, fmt.Errorf("block %d: bay_count must be > 0", b.BlockID)
		}
		if b.BayAreaHa <= 0 {
			return nil, fmt.Errorf("block %d: bay_area_ha must be > 0", b.BlockID)
		}
		if b.TotalAreaHa == 0 {
			b.TotalAreaHa = float64(b.BayCount) * b.BayAreaHa
		}
		if b.TotalAreaHa < 0 {
			return nil, fmt.Errorf("block %d: total_area_ha must be > 0", b.BlockID)
		}
		r.blocks[b.BlockID] = b
		r.ids = append(r.ids, b.BlockID)
	}
	sort.Ints(r.ids)
	return r, nil
}

// Get returns the block with the given id.
func (r *Registry) Get(id int) (entities.Block, error) {
	b, ok := r.blocks[id]
	if !ok {
		return entities.Block{}, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}
	return b, nil
}

// IDs returns block ids in ascending order. Every block scan uses this order.
func (r *Registry) IDs() []int {
	out := make([]int, len(r.ids))
	copy(out, r.ids)
	return out
}

// Blocks returns all blocks in canonical order.
func (r *Registry) Blocks() []entities.Block {
	out := make([]entities.Block, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.blocks[id])
	}
	return out
}

func (r *Registry) Len() int { return len(r.ids) }

// Validate checks that c names a known block and a bay inside it.
func (r *Registry) Validate(c entities.BayCoord) error {
	b, err := r.Get(c.BlockID)
	if err != nil {
		return err
	}
	if c.Bay < 1 || c.Bay > b.BayCount {
		return fmt.Errorf("block %d bay %d (1..%d): %w", c.BlockID, c.Bay, b.BayCount, ErrInvalidBay)
	}
	return nil
}
