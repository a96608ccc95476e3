package echoweb

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Client         *backend.Client
		Mail           core.EmailService
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		sessions *cookieManager
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		sessions: newCookieManager(core.Conf.SecretKey),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	if !core.Conf.TestMode {
		s.app.Use(echo.WrapMiddleware(csrf.Protect(
			[]byte(core.Conf.SecretKey),
			csrf.Secure(core.Conf.IsDeployed()),
			csrf.Path("/"),
		)))
	}
	s.app.Use(s.sessionMiddleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Renderer = newRenderer()
	s.app.Debug = core.Conf.Debug

	s.app.Static("/static", filepath.Join(core.Conf.WorkDir, "assets", "static"))

	s.registerAuth()
	s.registerAdmin()
	s.registerFieldAgent()
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
