package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/core/session"
	"github.com/migeprof/fehub/services/backend"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgAccountDisabled    = "User is disabled. Please contact support."
)

func (s *server) registerAuth() {
	s.app.GET("/", func(ctx echo.Context) error {
		sess := getContextSession(ctx)
		if sess.Authenticated() {
			return ctx.Redirect(http.StatusSeeOther, sess.DashboardPath())
		}
		return ctx.Redirect(http.StatusSeeOther, "/login")
	})

	s.app.GET("/login", s.loginPage, anonymousOnly)
	s.app.POST("/login", s.login, anonymousOnly)
	s.app.GET("/reset-password", s.resetPasswordPage)
	s.app.POST("/reset-password", s.resetPassword)
	s.app.POST("/logout", s.logout)
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Error    string
}

func (s *server) loginPage(ctx echo.Context) error {
	return renderPage(ctx, http.StatusOK, "login", "Sign In", loginForm{})
}

func (s *server) login(ctx echo.Context) error {
	var form loginForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding login form")
	}

	creds, err := s.opts.Client.Auth.Login(ctx.Request().Context(), form.Email, form.Password)
	if err != nil {
		switch errors.Cause(err) {
		case backend.ErrInvalidCredentials:
			form.Error = msgInvalidCredentials
		case backend.ErrAccountDisabled:
			form.Error = msgAccountDisabled
		default:
			if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
				form.Error = vErr.Error()
			} else {
				return err
			}
		}
		form.Password = ""
		return renderPage(ctx, http.StatusOK, "login", "Sign In", form)
	}

	if creds.MustResetPassword {
		// no session yet: the reset page runs off a short-lived cookie and
		// the user signs in again with the new password
		if err := s.sessions.writeReset(ctx.Response(), session.Session{Token: creds.Token, Role: creds.Role}); err != nil {
			return err
		}
		return ctx.Redirect(http.StatusSeeOther, "/reset-password")
	}

	store := &echoStore{mgr: s.sessions, ctx: ctx}
	if err := store.Save(session.Session{Token: creds.Token, Role: creds.Role}); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, session.DashboardPath(creds.Role))
}

type resetPasswordForm struct {
	OldPassword        string `form:"old_password"`
	NewPassword        string `form:"new_password"`
	ConfirmNewPassword string `form:"confirm_new_password"`
	Errors             map[string]string
	Error              string
}

// resetCredentials returns the acting credentials for the reset page: the
// live session for a signed-in user, else the pending forced-reset cookie.
func (s *server) resetCredentials(ctx echo.Context) (session.Session, bool) {
	if sess := getContextSession(ctx); sess.Authenticated() {
		return sess, true
	}
	return s.sessions.readReset(ctx.Request())
}

func (s *server) resetPasswordPage(ctx echo.Context) error {
	if _, ok := s.resetCredentials(ctx); !ok {
		return ctx.Redirect(http.StatusSeeOther, "/login")
	}
	return renderPage(ctx, http.StatusOK, "reset-password", "Reset Password", resetPasswordForm{})
}

func (s *server) resetPassword(ctx echo.Context) error {
	sess, ok := s.resetCredentials(ctx)
	if !ok {
		return ctx.Redirect(http.StatusSeeOther, "/login")
	}

	var form resetPasswordForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding reset password form")
	}

	rctx := backend.ContextWithToken(ctx.Request().Context(), sess.Token)
	err := s.opts.Client.Auth.ResetPassword(rctx, backend.PasswordReset{
		UserID:             sess.UserID(),
		OldPassword:        form.OldPassword,
		NewPassword:        form.NewPassword,
		ConfirmNewPassword: form.ConfirmNewPassword,
	})
	if err != nil {
		if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
			form.Errors = vErr.FieldMap()
			form.Error = vErr.Error()
		} else if apiErr, ok := errors.Cause(err).(*backend.APIError); ok {
			form.Error = apiErr.Message
		} else {
			return err
		}
		form.OldPassword, form.NewPassword, form.ConfirmNewPassword = "", "", ""
		return renderPage(ctx, http.StatusOK, "reset-password", "Reset Password", form)
	}

	// force a fresh sign-in with the new password
	s.sessions.clearReset(ctx.Response())
	s.sessions.clear(ctx.Response())
	setFlash(ctx, "Password updated. Please sign in again.")
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

func (s *server) logout(ctx echo.Context) error {
	s.sessions.clear(ctx.Response())
	return ctx.Redirect(http.StatusSeeOther, "/login")
}
