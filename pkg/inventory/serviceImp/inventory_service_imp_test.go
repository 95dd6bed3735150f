package serviceImp

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"

	"estufas/entities"
	"estufas/pkg/block"
	"estufas/pkg/inventory"
	"estufas/pkg/inventory/service"
	"estufas/pkg/session"
	"estufas/pkg/telemetry"
)

type memCrops struct {
	byName map[string]entities.CropProfile
	err    error
}

func (m *memCrops) List() ([]entities.CropProfile, error) { return nil, nil }
func (m *memCrops) FindByName(name string) (*entities.CropProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.byName[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}
func (m *memCrops) Upsert(*entities.CropProfile) error      { return nil }
func (m *memCrops) Count() (int64, error)                   { return int64(len(m.byName)), nil }
func (m *memCrops) BulkInsert([]entities.CropProfile) error { return nil }

func newSession(t *testing.T) *session.Session {
	t.Helper()
	reg, err := block.NewRegistry(block.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	return session.New(uuid.New(), inventory.NewEngine(reg, inventory.Labels{}))
}

func bays(blockID int, from, to int) []entities.BayCoord {
	var out []entities.BayCoord
	for b := from; b <= to; b++ {
		out = append(out, entities.BayCoord{BlockID: blockID, Bay: b})
	}
	return out
}

func TestAssignFillsCatalogDefaults(t *testing.T) {
	crops := &memCrops{byName: map[string]entities.CropProfile{
		"Tomate": {Name: "Tomate", RowSpacingM: 1.2, PlantSpacingM: 0.4, RowsPerBed: 4},
	}}
	m := telemetry.New(nil)
	svc := NewInventoryService(crops, m, 2025, 48)
	sess := newSession(t)

	rows := 2
	recs, err := svc.Assign(sess, service.AssignRequest{
		CropName:   " Tomate ",
		RowsPerBed: &rows,
		Bays:       bays(7, 1, 3),
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d", len(recs))
	}
	r := recs[0]
	if r.Year != 2025 || r.Week != 48 || r.CropName != "Tomate" {
		t.Fatalf("record = %+v", r)
	}
	if r.RowSpacingM != 1.2 || r.PlantSpacingM != 0.4 || r.RowsPerBed != 2 {
		t.Fatalf("spacing = %v/%v/%v", r.RowSpacingM, r.PlantSpacingM, r.RowsPerBed)
	}
	if r.BayRangeLabel != "Nave 1 a 3" || r.BayGroupCount != 3 {
		t.Fatalf("range = %q x%d", r.BayRangeLabel, r.BayGroupCount)
	}
	if got := testutil.ToFloat64(m.Assignments.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok assignments = %v", got)
	}
	if got := testutil.ToFloat64(m.BaysAssigned); got != 3 {
		t.Fatalf("bays assigned = %v", got)
	}
	if len(sess.Selection()) != 0 {
		t.Fatal("selection not cleared")
	}

	snap := svc.Inventory(sess)
	if snap.Year != 2025 || len(snap.Records) != 1 || snap.BaysByBlock[7] != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestAssignUnknownCropKeepsZeroSpacing(t *testing.T) {
	svc := NewInventoryService(&memCrops{}, nil, 2025, 48)
	sess := newSession(t)
	recs, err := svc.Assign(sess, service.AssignRequest{CropName: "Couve", Bays: bays(1, 5, 5)})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if recs[0].RowSpacingM != 0 || recs[0].PlantDensityPerHa != nil {
		t.Fatalf("record = %+v", recs[0])
	}
}

func TestAssignRejectsBadInput(t *testing.T) {
	svc := NewInventoryService(nil, nil, 2025, 48)
	sess := newSession(t)
	cases := []service.AssignRequest{
		{CropName: "", Bays: bays(1, 1, 1)},
		{CropName: "Tomate", Week: 54, Bays: bays(1, 1, 1)},
	}
	for i, req := range cases {
		if _, err := svc.Assign(sess, req); !errors.Is(err, service.ErrInvalidRequest) {
			t.Errorf("case %d: err = %v", i, err)
		}
	}
	if len(sess.Selection()) != 0 {
		t.Fatal("rejected request touched the selection")
	}
}

func TestAssignInvalidBaySelectsNothing(t *testing.T) {
	svc := NewInventoryService(nil, nil, 2025, 48)
	sess := newSession(t)
	req := service.AssignRequest{CropName: "Tomate", Bays: []entities.BayCoord{{BlockID: 1, Bay: 1}, {BlockID: 1, Bay: 99}}}
	if _, err := svc.Assign(sess, req); !errors.Is(err, block.ErrInvalidBay) {
		t.Fatalf("err = %v", err)
	}
	if len(sess.Selection()) != 0 || len(sess.Occupied()) != 0 {
		t.Fatal("partial selection after invalid bay")
	}
}

func TestAssignEmptySelection(t *testing.T) {
	m := telemetry.New(nil)
	svc := NewInventoryService(nil, m, 2025, 48)
	if _, err := svc.Assign(newSession(t), service.AssignRequest{CropName: "Tomate"}); !errors.Is(err, inventory.ErrEmptySelection) {
		t.Fatalf("err = %v", err)
	}
	if got := testutil.ToFloat64(m.Assignments.WithLabelValues("empty_selection")); got != 1 {
		t.Fatalf("empty_selection = %v", got)
	}
}

func TestAssignCatalogFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewInventoryService(&memCrops{err: boom}, nil, 2025, 48)
	if _, err := svc.Assign(newSession(t), service.AssignRequest{CropName: "Tomate", Bays: bays(1, 1, 1)}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestInventoryBeforeFirstAssignUsesDefaults(t *testing.T) {
	svc := NewInventoryService(nil, nil, 2024, 10)
	snap := svc.Inventory(newSession(t))
	if snap.Year != 2024 || snap.Week != 10 || len(snap.Records) != 0 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.ReferenceDate == nil || snap.ReferenceDate.Format("2006-01-02") != "2024-03-06" {
		t.Fatalf("reference date = %v", snap.ReferenceDate)
	}
}

func TestConcurrentAssignsKeepTheirOwnBays(t *testing.T) {
	svc := NewInventoryService(nil, nil, 2025, 48)
	sess := newSession(t)
	tomato := service.AssignRequest{CropName: "Tomate", Bays: bays(1, 1, 4)}
	lettuce := service.AssignRequest{CropName: "Alface", Bays: bays(2, 1, 4)}

	for round := 0; round < 500; round++ {
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, req := range []service.AssignRequest{tomato, lettuce} {
			wg.Add(1)
			go func(i int, req service.AssignRequest) {
				defer wg.Done()
				_, errs[i] = svc.Assign(sess, req)
			}(i, req)
		}
		wg.Wait()
		for i, err := range errs {
			if err != nil {
				t.Fatalf("round %d request %d: %v", round, i, err)
			}
		}
		for _, c := range tomato.Bays {
			if o, _ := sess.Occupancy(c); o.CropName != "Tomate" {
				t.Fatalf("round %d: %+v holds %q", round, c, o.CropName)
			}
		}
		for _, c := range lettuce.Bays {
			if o, _ := sess.Occupancy(c); o.CropName != "Alface" {
				t.Fatalf("round %d: %+v holds %q", round, c, o.CropName)
			}
		}
	}
	if len(sess.Selection()) != 0 {
		t.Fatal("selection left over after concurrent assigns")
	}
}
