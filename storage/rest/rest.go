// Package reststore implements the core repositories over the backend REST API.
package reststore

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/services/httpapi"
)

// Backend paths.
const (
	loginPath        = "/login"
	logoutPath       = "/logout"
	mePath           = "/client/me"
	healthPath       = "/actuator/health"
	classroomsPath   = "/turma"
	studentsPath     = "/estudante"
	attendancePath   = "/presenca/turma"
	measurementsPath = "/medida-corporal"
	testsPath        = "/teste-fisico"
	reportSuffix     = "relatorio"

	datePresenceParam = "data_presenca"
	startDateParam    = "dataInicial"
	endDateParam      = "dataFinal"
)

// Client is the subset of httpapi.Client the repositories need.
type Client interface {
	Get(ctx context.Context, path string, out interface{}, opts ...httpapi.CallOption) error
	GetRaw(ctx context.Context, path string, opts ...httpapi.CallOption) ([]byte, error)
	Post(ctx context.Context, path string, body, out interface{}, opts ...httpapi.CallOption) error
	Put(ctx context.Context, path string, body, out interface{}, opts ...httpapi.CallOption) error
	Delete(ctx context.Context, path string, opts ...httpapi.CallOption) error
	Download(ctx context.Context, path string, opts ...httpapi.CallOption) (*httpapi.Download, error)
}

var _ Client = (*httpapi.Client)(nil)

func join(base string, parts ...string) string {
	p := base
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// queryPage fetches a paginated collection, tolerating both page envelopes.
func queryPage[T any](ctx context.Context, c Client, path string, page core.PageRequest, extra url.Values) (core.Page[T], error) {
	q := page.Values()
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	raw, err := c.GetRaw(ctx, path, httpapi.WithQuery(q))
	if err != nil {
		return core.Page[T]{}, err
	}
	p, err := core.DecodePage[T](raw, page)
	return p, errors.Wrapf(err, "decoding %s page", path)
}

// notFound replaces a 404 with the repository's own sentinel error.
func notFound(err, sentinel error) error {
	if httpapi.IsStatus(err, 404) {
		return errors.Wrap(sentinel, err.Error())
	}
	return err
}
