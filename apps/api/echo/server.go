// Package echoapi exposes the admin controllers over a JWT-protected HTTP API.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
)

type (
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		Notifier   core.Notifier // also receives every notice; may be nil
		Validate   *validator.Validate
		Translator ut.Translator
		Users      user.Repository
		Subjects   subject.Repository
		Teachers   teacher.Repository
		Linker     teacher.Linker
		Reviews    review.Repository
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     Deps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps Deps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf
	s.app.HideBanner = true

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	e := newEnv(s.deps)
	registerUserAPI(v1, jwt, e, s.deps.Users)
	registerSubjectAPI(v1, jwt, e, s.deps.Subjects)
	registerTeacherAPI(v1, jwt, e, s.deps.Teachers, s.deps.Subjects, s.deps.Linker)
	registerReviewAPI(v1, jwt, e, s.deps)
}

func (s *server) Start() {
	s.errors <- s.app.Start(s.deps.Conf.Server.Address)
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+"!")
}
