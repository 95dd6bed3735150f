package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	invController "estufas/pkg/inventory/controller"
	"estufas/pkg/middleware"
	"estufas/pkg/session"
	sessionController "estufas/pkg/session/controller"
)

func New(
	e *echo.Echo,
	sessions *session.Manager,
	blockCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
	},
	cropCtrl interface {
		List(echo.Context) error
		Put(echo.Context) error
	},
	invCtrl invController.InventoryController,
	sessCtrl sessionController.SessionController,
	healthCtrl interface{ Health(echo.Context) error },
	metrics http.Handler,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	// reference data
	e.GET("/blocks", blockCtrl.List)
	e.GET("/blocks/:id", blockCtrl.Get)
	e.GET("/crops", cropCtrl.List)
	e.PUT("/crops/:name", cropCtrl.Put)

	// per-session state; attached per route so unmatched paths never open a session
	withSession := middleware.Session(sessions)
	e.GET("/session", sessCtrl.WhoAmI, withSession)
	e.DELETE("/session", sessCtrl.Destroy, withSession)

	e.GET("/selection", invCtrl.ListSelection, withSession)
	e.POST("/selection", invCtrl.Select, withSession)
	e.DELETE("/selection", invCtrl.ClearSelection, withSession)

	e.POST("/assignments", invCtrl.Assign, withSession)

	e.GET("/occupancy", invCtrl.ListOccupancy, withSession)
	e.GET("/occupancy/:block/:bay", invCtrl.GetOccupancy, withSession)
	e.DELETE("/occupancy/:block/:bay", invCtrl.RemoveOccupancy, withSession)

	e.GET("/inventory", invCtrl.Inventory, withSession)
	e.GET("/inventory/export", invCtrl.Export, withSession)
	return e
}
