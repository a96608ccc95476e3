package echoweb

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/migeprof/fehub/core/session"
	"github.com/migeprof/fehub/services/backend"
)

const contextSessionKey = "session"

// sessionMiddleware decodes the session cookie once per request. An expired
// token is treated as no session at all and the cookie is dropped.
func (s *server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if sess, ok := s.sessions.read(ctx.Request()); ok {
			if sess.Expired(time.Now()) {
				s.sessions.clear(ctx.Response())
			} else {
				ctx.Set(contextSessionKey, sess)
			}
		}
		return next(ctx)
	}
}

func getContextSession(ctx echo.Context) session.Session {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess
	}
	return session.Session{}
}

// reqCtx returns a request context carrying the session's bearer token for
// outgoing backend calls.
func reqCtx(ctx echo.Context) context.Context {
	rctx := ctx.Request().Context()
	if sess := getContextSession(ctx); sess.Authenticated() {
		rctx = backend.ContextWithToken(rctx, sess.Token)
	}
	return rctx
}

// requireRole protects a page. Anonymous visitors land on the sign-in page;
// signed-in users of the wrong role land on their own dashboard.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := getContextSession(ctx)
			if !sess.Authenticated() {
				return ctx.Redirect(http.StatusSeeOther, "/login")
			}
			if sess.Role != role {
				return ctx.Redirect(http.StatusSeeOther, sess.DashboardPath())
			}
			return next(ctx)
		}
	}
}

// anonymousOnly bounces signed-in users off the sign-in page.
func anonymousOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if sess := getContextSession(ctx); sess.Authenticated() {
			return ctx.Redirect(http.StatusSeeOther, sess.DashboardPath())
		}
		return next(ctx)
	}
}
