package controller

import "github.com/labstack/echo/v4"

type SessionController interface {
	WhoAmI(c echo.Context) error
	Destroy(c echo.Context) error
}
