// Package mockapi serves the upstream review API over an in-memory store.
package mockapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
	inmemdb "github.com/springreviewer/admin/storage/inmem"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Debug          bool
		Token          string // when set, every request must carry it as a bearer token
	}

	Deps struct {
		Logger   core.Logger
		Users    user.Repository
		Subjects subject.Repository
		Teachers teacher.Repository
		Linker   teacher.Linker
		Reviews  review.Repository
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		deps *Deps
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewDeps wires every repository to db.
func NewDeps(db *inmemdb.DB, logger core.Logger) *Deps {
	return &Deps{
		Logger:   logger,
		Users:    inmemdb.NewUserRepository(db),
		Subjects: inmemdb.NewSubjectRepository(db),
		Teachers: inmemdb.NewTeacherRepository(db),
		Linker:   inmemdb.NewTeacherSubjectLinker(db),
		Reviews:  inmemdb.NewReviewRepository(db),
	}
}

func NewServer(opts *Options, deps *Deps) Server {
	s := &server{
		opts: opts,
		deps: deps,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.opts.Token != "" {
		s.app.Use(middleware.KeyAuth(func(key string, _ echo.Context) (bool, error) {
			return key == s.opts.Token, nil
		}))
	}

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.deps.Logger)

	registerUserRoutes(s.app, s.deps.Users)
	registerSubjectRoutes(s.app, s.deps.Subjects)
	registerTeacherRoutes(s.app, s.deps.Teachers, s.deps.Linker)
	registerReviewRoutes(s.app, s.deps.Reviews)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
