package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"estufas/pkg/session"
)

const (
	SessionCookie = "ESTUFA_SESSION"
	SessionHeader = "X-Session-Id"
	sessionKey    = "session"
)

// Session attaches the caller's session to the context, creating one when the
// cookie (or X-Session-Id header) is missing or unknown.
func Session(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				raw = ck.Value
			}
			if raw == "" {
				raw = c.Request().Header.Get(SessionHeader)
			}
			s := m.Resolve(raw)
			if id := s.ID.String(); id != raw {
				c.SetCookie(&http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
			}
			c.Response().Header().Set(SessionHeader, s.ID.String())
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// SessionOf returns the session set by Session, or nil outside it.
func SessionOf(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}
