// Package prefs persists the client state (theme, cookie consent and session cookies) in a YAML file.
package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

var ErrInvalidTheme = errors.New("invalid theme")

func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Themes {
		if t == known {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidTheme, "%q", s)
}

const (
	themeKey   = "theme"
	consentKey = "consent"
	cookiesKey = "cookies"
)

// Store is the state file. Reads are served from memory; every write is flushed to disk.
type Store struct {
	mu      sync.Mutex
	v       *viper.Viper
	path    string
	consent *bool
}

// Open loads the state file at path; a missing file is an empty state.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(themeKey, string(ThemeSystem))
	v.SetDefault(consentKey, false)

	if _, err := os.Stat(path); err == nil {
		if err = v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading state file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "opening state file %s", path)
	}
	return &Store{v: v, path: path}, nil
}

func (s *Store) Path() string { return s.path }

// Theme returns the stored theme, ThemeSystem when unset or unreadable.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := ParseTheme(s.v.GetString(themeKey))
	if err != nil {
		return ThemeSystem
	}
	return t
}

func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(themeKey, string(t))
	return s.save()
}

// HasConsent reports whether the user accepted cookies.
// The value is cached until the next SetConsent.
func (s *Store) HasConsent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consent == nil {
		c := s.v.GetBool(consentKey)
		s.consent = &c
	}
	return *s.consent
}

// SetConsent stores the user's choice. Revoking consent also forgets the stored cookies.
func (s *Store) SetConsent(granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consent = nil
	s.v.Set(consentKey, granted)
	if !granted {
		s.v.Set(cookiesKey, []storedCookie{})
	}
	return s.save()
}

type storedCookie struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Value string `mapstructure:"value" yaml:"value"`
}

func (s *Store) cookies() ([]storedCookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cookies []storedCookie
	if err := s.v.UnmarshalKey(cookiesKey, &cookies); err != nil {
		return nil, errors.Wrap(err, "decoding stored cookies")
	}
	return cookies, nil
}

func (s *Store) setCookies(cookies []storedCookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(cookiesKey, cookies)
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating state directory")
	}
	return errors.Wrapf(s.v.WriteConfigAs(s.path), "writing state file %s", s.path)
}
