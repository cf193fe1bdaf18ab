package reststore

import (
	"context"
	"time"

	"github.com/jogaaurora/aurora/core/system"
	"github.com/jogaaurora/aurora/core/user"
	"github.com/jogaaurora/aurora/services/httpapi"
)

type userRepository struct {
	c Client
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(c Client) user.Repository {
	return &userRepository{c: c}
}

// Login sends the credentials as Basic auth; the backend answers with a session cookie.
// A 401 here is a failed login, not an expired session.
func (repo *userRepository) Login(ctx context.Context, creds user.Credentials) (user.User, error) {
	var usr user.User
	err := repo.c.Post(ctx, loginPath, struct{}{}, &usr,
		httpapi.WithBasicAuth(creds.Username, creds.Password),
		httpapi.SkipUnauthorized(),
	)
	return usr, err
}

func (repo *userRepository) Logout(ctx context.Context) error {
	return repo.c.Post(ctx, logoutPath, nil, nil, httpapi.SkipUnauthorized())
}

func (repo *userRepository) Me(ctx context.Context) (user.User, error) {
	var usr user.User
	err := repo.c.Get(ctx, mePath, &usr)
	return usr, err
}

type systemRepository struct {
	c Client
}

var _ system.Repository = (*systemRepository)(nil)

func NewSystemRepository(c Client) system.Repository {
	return &systemRepository{c: c}
}

func (repo *systemRepository) Health(ctx context.Context, timeout time.Duration) error {
	return repo.c.Get(ctx, healthPath, nil, httpapi.WithTimeout(timeout), httpapi.SkipUnauthorized())
}
