package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/report"
	"github.com/jogaaurora/aurora/core/session"
	"github.com/jogaaurora/aurora/core/student"
	"github.com/jogaaurora/aurora/core/system"
	"github.com/jogaaurora/aurora/core/user"
	"github.com/jogaaurora/aurora/services/httpapi"
	"github.com/jogaaurora/aurora/storage/prefs"
	reststore "github.com/jogaaurora/aurora/storage/rest"
)

// app is every long lived dependency of the CLI, wired once per process.
type app struct {
	conf   *core.Config
	logger core.Logger

	prefs  *prefs.Store
	jar    *prefs.Jar
	client *httpapi.Client

	session       *session.Manager
	systemSvc     *system.Service
	classroomSvc  *classroom.Service
	cache         *classroom.Cache
	studentSvc    *student.Service
	search        *student.Search
	assessmentSvc *assessment.Service
	reportSvc     *report.Service

	router *router
}

func newApp(conf *core.Config, logger core.Logger) (*app, error) {
	store, err := prefs.Open(conf.StateFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening state file")
	}
	jar, err := prefs.NewJar(store, conf.API.URL, logger)
	if err != nil {
		return nil, errors.Wrap(err, "restoring cookies")
	}
	client, err := httpapi.NewClient(httpapi.Options{
		BaseURL: conf.API.URL,
		Timeout: conf.API.Timeout,
		Consent: store,
		Jar:     jar,
		Logger:  logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating API client")
	}

	validator := core.NewValidator()
	a := &app{
		conf:          conf,
		logger:        logger,
		prefs:         store,
		jar:           jar,
		client:        client,
		systemSvc:     system.NewService(reststore.NewSystemRepository(client), conf.Health.Timeout),
		classroomSvc:  classroom.NewService(reststore.NewClassroomRepository(client), validator),
		studentSvc:    student.NewService(reststore.NewStudentRepository(client), validator),
		assessmentSvc: assessment.NewService(reststore.NewMeasurementRepository(client), reststore.NewPhysicalTestRepository(client), validator),
		reportSvc:     report.NewService(reststore.NewReportRepository(client), validator),
	}
	a.router = newRouter()
	a.session = session.NewManager(session.Deps{
		Users:    user.NewService(reststore.NewUserRepository(client), validator),
		Health:   a.systemSvc,
		Logger:   logger,
		Navigate: a.router.navigate,
		HealthOptions: session.HealthOptions{
			Retries: conf.Health.Retries,
			Delay:   conf.Health.Delay,
		},
	})
	a.router.auth = a.session
	client.SetUnauthorizedHandler(a.session.Invalidate)

	a.cache = classroom.NewCache(a.classroomSvc, reststore.NewAttendanceRepository(client), a.session, logger)
	a.search = student.NewSearch(a.studentSvc, logger)
	return a, nil
}

// bootstrap resolves the session before any command that talks to the backend.
func (a *app) bootstrap(ctx context.Context) session.State {
	if st := a.session.State(); st == session.Authenticated || st == session.Anonymous {
		return st
	}
	return a.session.Bootstrap(ctx)
}
