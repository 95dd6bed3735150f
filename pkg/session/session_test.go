package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"estufas/entities"
	"estufas/pkg/block"
	"estufas/pkg/inventory"
)

func testEngine(t *testing.T) *inventory.Engine {
	t.Helper()
	reg, err := block.NewRegistry(block.DefaultLayout())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return inventory.NewEngine(reg, inventory.DefaultLabels)
}

func lettuce(week int) inventory.Assignment {
	pd := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	return inventory.Assignment{
		Year: 2025, Week: week, CropName: "Alface", Color: "green",
		PlantingDate: &pd, RowSpacingM: 0.3, PlantSpacingM: 0.25, RowsPerBed: 4,
	}
}

func TestSessionApplyLifecycle(t *testing.T) {
	s := New(uuid.New(), testEngine(t))

	if recs, _, _ := s.Inventory(); len(recs) != 0 {
		t.Fatalf("inventory before first apply = %v", recs)
	}
	if _, err := s.Apply(lettuce(48)); !errors.Is(err, inventory.ErrEmptySelection) {
		t.Fatalf("err = %v", err)
	}

	for bay := 1; bay <= 10; bay++ {
		if err := s.ToggleSelection(entities.BayCoord{BlockID: 14, Bay: bay}, true); err != nil {
			t.Fatal(err)
		}
	}
	if last, ok := s.LastSelected(); !ok || last.BlockID != 14 || last.Bay != 10 {
		t.Fatalf("LastSelected = %v,%v", last, ok)
	}
	recs, err := s.Apply(lettuce(48))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(recs) != 1 || recs[0].BayRangeLabel != "Nave 1 a 10" {
		t.Fatalf("records = %+v", recs)
	}
	if len(s.Selection()) != 0 {
		t.Fatal("selection survives apply")
	}
	got, year, week := s.Inventory()
	if len(got) != 1 || year != 2025 || week != 48 {
		t.Fatalf("Inventory = %v %d/%d", got, year, week)
	}
	o, ok := s.Occupancy(entities.BayCoord{BlockID: 14, Bay: 3})
	if !ok || o.CropName != "Alface" || o.AgeWeeks == nil || *o.AgeWeeks != 3 {
		t.Fatalf("Occupancy = %+v,%v", o, ok)
	}

	// a failed apply keeps the previous snapshot
	if _, err := s.Apply(lettuce(49)); err == nil {
		t.Fatal("expected empty selection error")
	}
	if _, _, week := s.Inventory(); week != 48 {
		t.Fatalf("snapshot replaced by failed apply, week=%d", week)
	}

	if !s.RemoveOccupancy(entities.BayCoord{BlockID: 14, Bay: 3}) {
		t.Fatal("remove reported empty bay")
	}
	if len(s.Occupied()) != 9 {
		t.Fatalf("occupied = %d, want 9", len(s.Occupied()))
	}
	if recs, _, _ := s.Inventory(); recs[0].BayGroupCount != 10 {
		t.Fatal("remove should not rebuild the snapshot")
	}
}

func TestSessionAssignSelectsAndApplies(t *testing.T) {
	s := New(uuid.New(), testEngine(t))
	if err := s.ToggleSelection(entities.BayCoord{BlockID: 3, Bay: 2}, true); err != nil {
		t.Fatal(err)
	}

	bad := []entities.BayCoord{{BlockID: 3, Bay: 1}, {BlockID: 3, Bay: 40}}
	if _, _, err := s.Assign(bad, lettuce(48)); !errors.Is(err, block.ErrInvalidBay) {
		t.Fatalf("err = %v", err)
	}
	if sel := s.Selection(); len(sel) != 1 {
		t.Fatalf("invalid assign changed the selection: %v", sel)
	}

	recs, n, err := s.Assign([]entities.BayCoord{{BlockID: 3, Bay: 1}, {BlockID: 3, Bay: 3}}, lettuce(48))
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if n != 3 || len(recs) != 1 || recs[0].BayRangeLabel != "Nave 1 a 3" {
		t.Fatalf("n=%d records=%+v", n, recs)
	}
	if len(s.Selection()) != 0 {
		t.Fatal("selection survives assign")
	}
}

func TestSessionInventoryIsCopy(t *testing.T) {
	s := New(uuid.New(), testEngine(t))
	_ = s.ToggleSelection(entities.BayCoord{BlockID: 1, Bay: 1}, true)
	if _, err := s.Apply(lettuce(48)); err != nil {
		t.Fatal(err)
	}
	recs, _, _ := s.Inventory()
	recs[0].CropName = "mutated"
	again, _, _ := s.Inventory()
	if again[0].CropName != "Alface" {
		t.Fatal("Inventory exposes internal slice")
	}
}

func TestSessionConcurrentApply(t *testing.T) {
	s := New(uuid.New(), testEngine(t))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(blockID int) {
			defer wg.Done()
			for bay := 1; bay <= 22; bay++ {
				_ = s.ToggleSelection(entities.BayCoord{BlockID: blockID, Bay: bay}, true)
			}
			_, _ = s.Apply(lettuce(48))
		}(g + 1)
	}
	wg.Wait()

	if len(s.Selection()) != 0 {
		t.Fatalf("selection not drained: %d", len(s.Selection()))
	}
	recs, _, _ := s.Inventory()
	if totals := inventory.TotalBays(recs); len(totals) != 8 {
		t.Fatalf("final snapshot covers %d blocks, want 8", len(totals))
	}
	for id, n := range inventory.TotalBays(recs) {
		if n != 22 {
			t.Fatalf("block %d covers %d bays", id, n)
		}
	}
}

func TestManagerResolveDestroy(t *testing.T) {
	m := NewManager(testEngine(t), time.Hour)
	a := m.Resolve("")
	if m.Len() != 1 {
		t.Fatalf("Len = %d", m.Len())
	}
	if b := m.Resolve(a.ID.String()); b != a {
		t.Fatal("Resolve returned a different session for a known id")
	}
	if c := m.Resolve(uuid.NewString()); c == a || m.Len() != 2 {
		t.Fatal("unknown id should start a new session")
	}
	if !m.Destroy(a.ID) || m.Destroy(a.ID) {
		t.Fatal("Destroy should succeed once")
	}
	if _, ok := m.Get(a.ID); ok {
		t.Fatal("destroyed session still reachable")
	}
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(testEngine(t), time.Hour)
	old := m.Create()
	fresh := m.Create()
	old.mu.Lock()
	old.lastSeen = time.Now().Add(-2 * time.Hour)
	old.mu.Unlock()

	if n := m.Sweep(time.Now()); n != 1 {
		t.Fatalf("Sweep evicted %d, want 1", n)
	}
	if _, ok := m.Get(old.ID); ok {
		t.Fatal("idle session kept")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Fatal("active session evicted")
	}

	off := NewManager(testEngine(t), 0)
	s := off.Create()
	s.lastSeen = time.Time{}
	if off.Sweep(time.Now()) != 0 {
		t.Fatal("zero ttl must disable eviction")
	}
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	m := NewManager(testEngine(t), time.Millisecond)
	m.Create()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if m.Len() != 0 {
		t.Fatalf("Run did not sweep, Len=%d", m.Len())
	}
}
