package prefs

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

// Jar is a cookie jar scoped to the API origin, persisting its cookies in the Store
// so the session survives between runs.
type Jar struct {
	mu     sync.RWMutex
	store  *Store
	base   *url.URL
	jar    *cookiejar.Jar
	logger core.Logger
}

var _ http.CookieJar = (*Jar)(nil)

func NewJar(store *Store, baseURL string, logger core.Logger) (*Jar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing base URL")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}

	stored, err := store.cookies()
	if err != nil {
		return nil, err
	}
	restored := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		restored = append(restored, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(base, restored)

	return &Jar{store: store, base: base, jar: jar, logger: logger}, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
	current := j.jar.Cookies(j.base)
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	if err := j.store.setCookies(stored); err != nil && j.logger != nil {
		j.logger.Error("persisting cookies", err)
	}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

// Clear forgets every cookie, in memory and on disk.
func (j *Jar) Clear() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return errors.Wrap(err, "creating cookie jar")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = jar
	return j.store.setCookies([]storedCookie{})
}
