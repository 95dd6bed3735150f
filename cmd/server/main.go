package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"estufas/config"
	"estufas/database"
	"estufas/router"

	// Blocks
	blockCtrlImp "estufas/pkg/block/controllerImp"
	blockRepoImp "estufas/pkg/block/repositoryImp"

	// Crops
	cropCtrlImp "estufas/pkg/crop/controllerImp"
	cropRepoImp "estufas/pkg/crop/repositoryImp"

	// Inventory
	"estufas/pkg/inventory"
	invCtrlImp "estufas/pkg/inventory/controllerImp"
	invSvc "estufas/pkg/inventory/serviceImp"

	// Sessions
	"estufas/pkg/session"
	sessCtrlImp "estufas/pkg/session/controllerImp"

	// Health + metrics
	healthCtrlImp "estufas/pkg/health/controllerImp"
	"estufas/pkg/telemetry"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate + reference data
	db := database.OpenSQLite(cfg.DBPath)
	bRepo := blockRepoImp.New(db)
	cRepo := cropRepoImp.New(db)
	if err := database.SeedBlocks(bRepo, cfg.BlocksFile); err != nil {
		log.Fatalf("[db] seed blocks: %v", err)
	}
	if err := database.SeedCrops(cRepo, cfg.CropsFile); err != nil {
		log.Fatalf("[db] seed crops: %v", err)
	}
	reg, err := database.LoadRegistry(bRepo)
	if err != nil {
		log.Fatalf("[db] block registry: %v", err)
	}
	log.Printf("[db] registry: %d blocks %v", reg.Len(), reg.IDs())

	// 3) Engine + sessions
	engine := inventory.NewEngine(reg, inventory.Labels{
		Singular: cfg.RangeSingular,
		Plural:   cfg.RangePlural,
		Through:  cfg.RangeThrough,
	})
	sessions := session.NewManager(engine, cfg.SessionTTL)
	metrics := telemetry.New(sessions.Len)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sessions.Run(ctx, time.Minute)

	// 4) Controllers
	iSvc := invSvc.NewInventoryService(cRepo, metrics, cfg.DefaultYear, cfg.DefaultWeek)
	bCtrl := blockCtrlImp.New(reg)
	cCtrl := cropCtrlImp.New(cRepo)
	iCtrl := invCtrlImp.New(iSvc)
	sCtrl := sessCtrlImp.NewSessionController(sessions)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, reg.Len(), sessions.Len)

	// 5) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	r := router.New(e, sessions, bCtrl, cCtrl, iCtrl, sCtrl, hCtrl, metrics.Handler())

	// 6) Start
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
