package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

// newAppHTTPErrorHandler routes errors the way a browser expects: unknown
// paths bounce to the visitor's landing page, upstream rejections become
// flash messages, anything else is a plain error page.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		sess := getContextSession(ctx)

		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Code == http.StatusNotFound || origErr.Code == http.StatusMethodNotAllowed {
				// unknown location: route to the visitor's landing page
				target := "/login"
				if sess.Authenticated() {
					target = sess.DashboardPath()
				}
				_ = ctx.Redirect(http.StatusSeeOther, target)
				return
			}
			code = origErr.Code
			message = http.StatusText(origErr.Code)
		default:
			switch {
			case errors.Cause(err) == backend.ErrForbidden, errors.Cause(err) == backend.ErrNotFound:
				setFlash(ctx, upstreamErrMsg(err))
				_ = ctx.Redirect(http.StatusSeeOther, sess.DashboardPath())
				return
			default:
				code = http.StatusInternalServerError
				message = "Something went wrong. Please try again."
				logger.Error(http.StatusText(code), errors.Wrap(err, "handling request"), sess)

				if core.IsShutdown(err) {
					logger.Fatal("unrecoverable server state", err)
				}
			}
		}

		if rErr := renderPage(ctx, code, "error", "Error", echo.Map{
			"Code":    code,
			"Message": message,
		}); rErr != nil {
			ctx.Echo().Logger.Error(rErr)
		}
	}
}

// upstreamErrMsg picks the user-facing line for a failed backend call. The
// error detail itself only ever goes to the logger.
func upstreamErrMsg(err error) string {
	if apiErr, ok := errors.Cause(err).(*backend.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	switch errors.Cause(err) {
	case backend.ErrForbidden:
		return "You do not have permission to do that."
	case backend.ErrNotFound:
		return "The requested record no longer exists."
	}
	return "Something went wrong. Please try again."
}
