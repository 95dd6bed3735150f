// Package session bundles the mutable state of one user: occupancy, the
// working selection and the last consolidated inventory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"estufas/entities"
	"estufas/pkg/inventory"
	"estufas/pkg/occupancy"
)

// Session is safe for concurrent use. Every operation holds mu, so an
// Apply or Assign never interleaves with another operation on the same
// session.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	engine    *inventory.Engine
	store     *occupancy.Store
	selection *occupancy.Selection
	snapshot  []entities.InventoryRecord
	year      int
	week      int
	lastSeen  time.Time
}

func New(id uuid.UUID, engine *inventory.Engine) *Session {
	return &Session{
		ID:        id,
		engine:    engine,
		store:     occupancy.NewStore(),
		selection: occupancy.NewSelection(engine.Registry()),
		lastSeen:  time.Now(),
	}
}

func (s *Session) touch() { s.lastSeen = time.Now() }

// LastSeen is the time of the most recent operation.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// ToggleSelection adds or removes one bay from the working selection.
func (s *Session) ToggleSelection(c entities.BayCoord, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.selection.Toggle(c, selected)
}

// Select adds every bay in cs, or none of them when any is invalid.
func (s *Session) Select(cs []entities.BayCoord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.selectAll(cs)
}

func (s *Session) selectAll(cs []entities.BayCoord) error {
	for _, c := range cs {
		if err := s.engine.Registry().Validate(c); err != nil {
			return err
		}
	}
	for _, c := range cs {
		if err := s.selection.Toggle(c, true); err != nil {
			return err
		}
	}
	return nil
}

// ClearSelection drops every selected bay.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Clear()
}

// Selection returns the selected bays in selection order.
func (s *Session) Selection() []entities.BayCoord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Snapshot()
}

// LastSelected returns the bay selected most recently.
func (s *Session) LastSelected() (entities.BayCoord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Last()
}

// Apply assigns a to the selection and replaces the inventory snapshot. On
// error the previous snapshot is kept.
func (s *Session) Apply(a inventory.Assignment) ([]entities.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.apply(a)
}

// Assign adds bays to the selection and applies a in one critical section,
// so a concurrent request cannot consume or extend this selection. It
// returns the number of bays written.
func (s *Session) Assign(bays []entities.BayCoord, a inventory.Assignment) ([]entities.InventoryRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.selectAll(bays); err != nil {
		return nil, 0, err
	}
	n := s.selection.Len()
	recs, err := s.apply(a)
	if err != nil {
		return nil, 0, err
	}
	return recs, n, nil
}

func (s *Session) apply(a inventory.Assignment) ([]entities.InventoryRecord, error) {
	recs, err := s.engine.Apply(a, s.selection, s.store)
	if err != nil {
		return nil, err
	}
	s.snapshot = recs
	s.year, s.week = a.Year, a.Week
	return cloneRecords(recs), nil
}

// Occupancy returns what is planted in one bay.
func (s *Session) Occupancy(c entities.BayCoord) (entities.Occupancy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(c)
}

// Occupied lists every occupied bay ordered by block then bay.
func (s *Session) Occupied() []entities.OccupiedBay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// RemoveOccupancy empties a bay. The inventory snapshot is not rebuilt until
// the next Apply.
func (s *Session) RemoveOccupancy(c entities.BayCoord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.store.Remove(c)
}

// Inventory returns the last consolidated inventory, empty before the first
// successful Apply, along with the year/week it was computed for.
func (s *Session) Inventory() (recs []entities.InventoryRecord, year, week int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.snapshot), s.year, s.week
}

func cloneRecords(in []entities.InventoryRecord) []entities.InventoryRecord {
	out := make([]entities.InventoryRecord, len(in))
	copy(out, in)
	return out
}
