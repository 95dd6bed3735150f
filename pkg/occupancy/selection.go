package occupancy

import (
	"estufas/entities"
	"estufas/pkg/block"
)

// Selection is the insertion-ordered set of bays chosen for the next bulk
// assignment. Every member is a valid coordinate of the registry.
type Selection struct {
	reg   *block.Registry
	order []entities.BayCoord
	index map[entities.BayCoord]int
}

func NewSelection(reg *block.Registry) *Selection {
	return &Selection{reg: reg, index: map[entities.BayCoord]int{}}
}

// Toggle adds c when selected is true and removes it otherwise. Adding an
// already selected bay keeps its original position.
func (s *Selection) Toggle(c entities.BayCoord, selected bool) error {
	if err := s.reg.Validate(c); err != nil {
		return err
	}
	_, present := s.index[c]
	switch {
	case selected && !present:
		s.index[c] = len(s.order)
		s.order = append(s.order, c)
	case !selected && present:
		s.remove(c)
	}
	return nil
}

func (s *Selection) remove(c entities.BayCoord) {
	i := s.index[c]
	delete(s.index, c)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

func (s *Selection) Contains(c entities.BayCoord) bool {
	_, ok := s.index[c]
	return ok
}

func (s *Selection) Len() int { return len(s.order) }

func (s *Selection) Clear() {
	s.order = nil
	s.index = map[entities.BayCoord]int{}
}

// Snapshot returns the selected bays in the order they were selected.
func (s *Selection) Snapshot() []entities.BayCoord {
	out := make([]entities.BayCoord, len(s.order))
	copy(out, s.order)
	return out
}

// Last returns the most recently selected bay. The UI uses its block to
// decide which panel to expand.
func (s *Selection) Last() (entities.BayCoord, bool) {
	if len(s.order) == 0 {
		return entities.BayCoord{}, false
	}
	return s.order[len(s.order)-1], true
}
