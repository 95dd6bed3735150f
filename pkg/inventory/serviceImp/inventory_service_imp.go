package serviceImp

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"estufas/entities"
	"estufas/pkg/agronomy"
	"estufas/pkg/block"
	croprepo "estufas/pkg/crop/repository"
	"estufas/pkg/inventory"
	"estufas/pkg/inventory/service"
	"estufas/pkg/session"
	"estufas/pkg/telemetry"
)

type inventorySvc struct {
	crops   croprepo.CropRepository
	metrics *telemetry.Metrics
	year    int
	week    int
}

func NewInventoryService(crops croprepo.CropRepository, m *telemetry.Metrics, defaultYear, defaultWeek int) service.InventoryService {
	return &inventorySvc{crops: crops, metrics: m, year: defaultYear, week: defaultWeek}
}

func (s *inventorySvc) Defaults() (int, int) { return s.year, s.week }

func (s *inventorySvc) Toggle(sess *session.Session, c entities.BayCoord, selected bool) error {
	return sess.ToggleSelection(c, selected)
}

func (s *inventorySvc) Assign(sess *session.Session, req service.AssignRequest) ([]entities.InventoryRecord, error) {
	a, err := s.assignment(req)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	recs, bays, err := sess.Assign(req.Bays, a)
	took := time.Since(start)
	switch {
	case errors.Is(err, block.ErrInvalidBay), errors.Is(err, block.ErrBlockNotFound):
		return nil, err
	case errors.Is(err, inventory.ErrEmptySelection):
		s.observe("empty_selection", 0, 0, took)
		return nil, err
	case err != nil:
		s.observe("error", 0, 0, took)
		log.Printf("[inventory] session %s: apply failed: %v", sess.ID, err)
		return nil, err
	}
	s.observe("ok", bays, len(recs), took)
	log.Printf("[inventory] session %s: %s on %d bays -> %d records (%d/S%02d)", sess.ID, a.CropName, bays, len(recs), a.Year, a.Week)
	return recs, nil
}

func (s *inventorySvc) observe(result string, bays, recs int, took time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveApply(result, bays, recs, took)
	}
}

// assignment validates req and fills catalog defaults.
func (s *inventorySvc) assignment(req service.AssignRequest) (inventory.Assignment, error) {
	a := inventory.Assignment{
		Year:          req.Year,
		Week:          req.Week,
		CropName:      strings.TrimSpace(req.CropName),
		Color:         strings.TrimSpace(req.Color),
		PlantingDate:  req.PlantingDate,
		BlockRowCount: req.BlockRowCount,
		Observations:  req.Observations,
	}
	if a.Year == 0 {
		a.Year = s.year
	}
	if a.Week == 0 {
		a.Week = s.week
	}
	if a.CropName == "" {
		return a, fmt.Errorf("crop_name is required: %w", service.ErrInvalidRequest)
	}
	if a.Week < 1 || a.Week > 53 {
		return a, fmt.Errorf("week %d outside 1..53: %w", a.Week, service.ErrInvalidRequest)
	}
	if a.Observations != nil && strings.TrimSpace(*a.Observations) == "" {
		a.Observations = nil
	}

	var profile *entities.CropProfile
	if s.crops != nil && (req.RowSpacingM == nil || req.PlantSpacingM == nil || req.RowsPerBed == nil) {
		p, err := s.crops.FindByName(a.CropName)
		switch {
		case err == nil:
			profile = p
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return a, err
		}
	}
	if req.RowSpacingM != nil {
		a.RowSpacingM = *req.RowSpacingM
	} else if profile != nil {
		a.RowSpacingM = profile.RowSpacingM
	}
	if req.PlantSpacingM != nil {
		a.PlantSpacingM = *req.PlantSpacingM
	} else if profile != nil {
		a.PlantSpacingM = profile.PlantSpacingM
	}
	if req.RowsPerBed != nil {
		a.RowsPerBed = *req.RowsPerBed
	} else if profile != nil {
		a.RowsPerBed = profile.RowsPerBed
	}
	return a, nil
}

func (s *inventorySvc) Inventory(sess *session.Session) service.Snapshot {
	recs, year, week := sess.Inventory()
	if year == 0 {
		year, week = s.year, s.week
	}
	snap := service.Snapshot{Year: year, Week: week, Records: recs, BaysByBlock: inventory.TotalBays(recs)}
	if ref, ok := agronomy.WeekAnchor(year, week); ok {
		snap.ReferenceDate = &ref
	}
	return snap
}
