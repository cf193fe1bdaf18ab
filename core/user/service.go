package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

type Repository interface {
	// Login exchanges credentials (sent as Basic auth) for a session cookie.
	Login(ctx context.Context, creds Credentials) (User, error)
	Logout(ctx context.Context) error
	// Me resolves the user owning the current session.
	Me(ctx context.Context) (User, error)
}

type Service struct {
	repo      Repository
	validator *core.Validator
}

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

// Login validates creds locally before any network call.
func (svc *Service) Login(ctx context.Context, creds Credentials) (User, error) {
	creds.Username = core.CleanString(creds.Username)
	if err := svc.validator.Check(creds); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.Login(ctx, creds)
	return usr, errors.Wrap(err, "logging in")
}

func (svc *Service) Logout(ctx context.Context) error {
	return errors.Wrap(svc.repo.Logout(ctx), "logging out")
}

func (svc *Service) Me(ctx context.Context) (User, error) {
	usr, err := svc.repo.Me(ctx)
	return usr, errors.Wrap(err, "getting logged in user")
}
