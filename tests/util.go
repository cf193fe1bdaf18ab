// Package testutil starts the development backend for tests that need a real server.
package testutil

import (
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jogaaurora/aurora/apps/devserver/echo"
	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/user"
	"github.com/jogaaurora/aurora/services/httpapi"
	logsvc "github.com/jogaaurora/aurora/services/logger"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

// Credentials of the account created by NewServer.
const (
	Username = "professor"
	Password = "aurora123"
)

// TestConfig is the configuration the test servers run with.
func TestConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Joga Aurora",
		DevServer: core.DevServerConfig{
			SecretKey:  "test-secret",
			SessionTTL: time.Hour,
		},
	}
}

// NewServer starts the development backend over an empty DB holding a single teacher account.
func NewServer(t *testing.T) (*httptest.Server, *inmemdb.DB) {
	t.Helper()
	db := inmemdb.Open()
	CreateUser(t, db, "Professora Aurora", Username, Password, user.RoleTeacher)

	app := echoapi.NewServer("", nil, &echoapi.Deps{
		Conf:           TestConfig(),
		Logger:         logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), false),
		DB:             db,
		Validator:      core.NewValidator(),
		DisableReqLogs: true,
	})
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return srv, db
}

// NewClient returns an API client for srv that always consents to cookies.
func NewClient(t *testing.T, srv *httptest.Server) *httpapi.Client {
	t.Helper()
	c, err := httpapi.NewClient(httpapi.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return c
}

func CreateUser(t *testing.T, db *inmemdb.DB, name, uname, pwd string, roles ...string) user.User {
	t.Helper()
	usr := user.User{Name: name, Username: uname, Roles: roles}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := db.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
