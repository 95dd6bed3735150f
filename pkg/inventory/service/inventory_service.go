package service

import (
	"errors"
	"time"

	"estufas/entities"
	"estufas/pkg/session"
)

// ErrInvalidRequest marks caller input the service refuses before touching
// the session.
var ErrInvalidRequest = errors.New("invalid request")

// AssignRequest is a bulk assignment as received from a client. Nil spacing
// fields are filled from the crop catalog; zero Year/Week use the configured
// defaults.
type AssignRequest struct {
	Year          int
	Week          int
	CropName      string
	Color         string
	PlantingDate  *time.Time
	RowSpacingM   *float64
	PlantSpacingM *float64
	RowsPerBed    *int
	BlockRowCount *int
	Observations  *string
	Bays          []entities.BayCoord // selected before applying, optional
}

// Snapshot is the last consolidated inventory of a session.
type Snapshot struct {
	Year          int                        `json:"year"`
	Week          int                        `json:"week"`
	ReferenceDate *time.Time                 `json:"reference_date,omitempty"` // Wednesday of the week, ages are measured to it
	Records       []entities.InventoryRecord `json:"records"`
	BaysByBlock   map[int]int                `json:"bays_by_block"`
}

type InventoryService interface {
	Toggle(s *session.Session, c entities.BayCoord, selected bool) error
	Assign(s *session.Session, req AssignRequest) ([]entities.InventoryRecord, error)
	Inventory(s *session.Session) Snapshot
	Defaults() (year, week int)
}
