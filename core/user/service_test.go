package user

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/jogaaurora/aurora/core"
)

type repoMock struct {
	logins int
	creds  Credentials
}

func (r *repoMock) Login(_ context.Context, creds Credentials) (User, error) {
	r.logins++
	r.creds = creds
	return User{ID: "1", Username: creds.Username}, nil
}

func (r *repoMock) Logout(context.Context) error { return nil }

func (r *repoMock) Me(context.Context) (User, error) { return User{}, errors.New("no session") }

func TestService_Login(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		wantField string
	}{
		{name: "valid", creds: Credentials{Username: " admin ", Password: "secret"}},
		{name: "short username", creds: Credentials{Username: "adm", Password: "secret"}, wantField: "username"},
		{name: "long username", creds: Credentials{Username: strings.Repeat("a", 257), Password: "secret"}, wantField: "username"},
		{name: "short password", creds: Credentials{Username: "admin", Password: "12345"}, wantField: "password"},
		{name: "long password", creds: Credentials{Username: "admin", Password: strings.Repeat("p", 129)}, wantField: "password"},
		{name: "missing password", creds: Credentials{Username: "admin"}, wantField: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{}
			svc := NewService(repo, core.NewValidator())

			usr, err := svc.Login(context.Background(), tt.creds)
			if tt.wantField == "" {
				assert.NoError(t, err)
				assert.Equal(t, "admin", usr.Username)
				assert.Equal(t, "admin", repo.creds.Username, "username is trimmed")
				return
			}
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Login() error = %v, want *core.ValidationError", err)
			}
			_, ok := vErr.Field(tt.wantField)
			assert.True(t, ok, "Login() error fields = %v", vErr.Fields)
			assert.Equal(t, 0, repo.logins, "validation failures never reach the network")
		})
	}
}

func TestUser_Password(t *testing.T) {
	var usr User
	assert.NoError(t, usr.SetPassword("secret"))
	assert.NoError(t, usr.CheckPassword("secret"))
	assert.Error(t, usr.CheckPassword("wrong"))
}
