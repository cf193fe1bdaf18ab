// Package echoapi serves the backend contract over the in-memory storage, for local development.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/jogaaurora/aurora/core"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

type Deps struct {
	Conf           *core.Config
	Logger         core.Logger
	DB             *inmemdb.DB
	Validator      *core.Validator
	DisableReqLogs bool
}

type Server struct {
	*Deps
	addr     string
	app      *echo.Echo
	shutdown chan os.Signal
	errors   chan error
}

var _ http.Handler = (*Server)(nil)

func NewServer(addr string, shutdown chan os.Signal, deps *Deps) *Server {
	s := &Server{
		Deps:     deps,
		addr:     addr,
		app:      echo.New(),
		shutdown: shutdown,
		errors:   make(chan error, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	debug := s.Conf.Debug

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if origin := s.Conf.DevServer.FrontendOrigin; origin != "" {
		s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{origin},
			AllowCredentials: true,
			ExposeHeaders:    []string{echo.HeaderContentDisposition},
		}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.signalShutdown)
	s.app.Debug = debug

	sessions := newSessionIssuer(s.Conf.AppName, []byte(s.Conf.DevServer.SecretKey), s.Conf.DevServer.SessionTTL)
	auth := sessions.middleware()

	registerSystemAPI(s.app)
	registerAuthAPI(s.app, auth, sessions, s.DB)
	registerClassroomAPI(s.app, auth, s.DB, s.Validator)
	registerStudentAPI(s.app, auth, s.DB, s.Validator)
	registerAttendanceAPI(s.app, auth, s.DB)
	registerAssessmentAPI(s.app, auth, s.DB, s.Validator)
	registerReportAPI(s.app, auth, s.DB)
}

func (s *Server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- syscall.SIGTERM
	}
}

// Start serves until Shutdown; listener failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
