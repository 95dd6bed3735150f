// Package occupancy holds the per-bay crop records and the working selection
// of a session. Neither type is safe for concurrent use; session.Session
// serialises access.
package occupancy

import (
	"sort"

	"estufas/entities"
)

// Store maps bay coordinates to occupancy. Absent means the bay is empty.
type Store struct {
	bays map[entities.BayCoord]entities.Occupancy
}

func NewStore() *Store {
	return &Store{bays: map[entities.BayCoord]entities.Occupancy{}}
}

// Upsert overwrites whatever is recorded at c.
func (s *Store) Upsert(c entities.BayCoord, o entities.Occupancy) { s.bays[c] = o }

func (s *Store) Get(c entities.BayCoord) (entities.Occupancy, bool) {
	o, ok := s.bays[c]
	return o, ok
}

// Remove empties a bay. It reports whether the bay was occupied.
func (s *Store) Remove(c entities.BayCoord) bool {
	if _, ok := s.bays[c]; !ok {
		return false
	}
	delete(s.bays, c)
	return true
}

func (s *Store) Len() int { return len(s.bays) }

// All returns a copy of the mapping.
func (s *Store) All() map[entities.BayCoord]entities.Occupancy {
	out := make(map[entities.BayCoord]entities.Occupancy, len(s.bays))
	for k, v := range s.bays {
		out[k] = v
	}
	return out
}

// Block returns the occupied bay indices of one block, ascending.
func (s *Store) Block(blockID int) []int {
	var bays []int
	for c := range s.bays {
		if c.BlockID == blockID {
			bays = append(bays, c.Bay)
		}
	}
	sort.Ints(bays)
	return bays
}

// List returns every occupied bay ordered by block then bay.
func (s *Store) List() []entities.OccupiedBay {
	out := make([]entities.OccupiedBay, 0, len(s.bays))
	for c, o := range s.bays {
		out = append(out, entities.OccupiedBay{BayCoord: c, Occupancy: o})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BlockID != out[j].BlockID {
			return out[i].BlockID < out[j].BlockID
		}
		return out[i].Bay < out[j].Bay
	})
	return out
}
