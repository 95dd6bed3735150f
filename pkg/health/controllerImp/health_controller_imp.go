package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db       *gorm.DB
	blocks   int
	sessions func() int
}

func NewHealthCtrl(db *gorm.DB, blocks int, sessions func() int) *HealthCtrl {
	return &HealthCtrl{db: db, blocks: blocks, sessions: sessions}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			dbOK = false
			dbErr = "db.DB(): " + err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
	} else {
		dbOK = false
		dbErr = "gorm db is nil"
	}

	regOK := h.blocks > 0
	regErr := ""
	if !regOK {
		regErr = "block registry is empty"
	}

	allOK := dbOK && regOK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	sessions := 0
	if h.sessions != nil {
		sessions = h.sessions()
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Err: dbErr},
			"registry": sub{OK: regOK, Err: regErr},
		},
		"blocks":   h.blocks,
		"sessions": sessions,
		"time":     time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
