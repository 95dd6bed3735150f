package controller

import "github.com/labstack/echo/v4"

type InventoryController interface {
	Select(c echo.Context) error
	ListSelection(c echo.Context) error
	ClearSelection(c echo.Context) error
	Assign(c echo.Context) error
	ListOccupancy(c echo.Context) error
	GetOccupancy(c echo.Context) error
	RemoveOccupancy(c echo.Context) error
	Inventory(c echo.Context) error
	Export(c echo.Context) error
}
