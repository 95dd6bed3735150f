package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"estufas/pkg/middleware"
	"estufas/pkg/session"
	"estufas/pkg/session/controller"
)

type sessionCtrl struct{ m *session.Manager }

func NewSessionController(m *session.Manager) controller.SessionController {
	return &sessionCtrl{m}
}

func (h *sessionCtrl) WhoAmI(c echo.Context) error {
	s := middleware.SessionOf(c)
	return c.JSON(http.StatusOK, echo.Map{
		"session_id": s.ID.String(),
		"selected":   len(s.Selection()),
		"occupied":   len(s.Occupied()),
	})
}

func (h *sessionCtrl) Destroy(c echo.Context) error {
	s := middleware.SessionOf(c)
	h.m.Destroy(s.ID)
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusNoContent)
}
