package prefs

import (
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "aurora.yaml")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"dark", ThemeDark, false},
		{" Light ", ThemeLight, false},
		{"SYSTEM", ThemeSystem, false},
		{"blue", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTheme(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseTheme() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTheme))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStore_Theme(t *testing.T) {
	s, path := openTemp(t)
	assert.Equal(t, ThemeSystem, s.Theme())

	require.NoError(t, s.SetTheme(ThemeDark))
	assert.Error(t, s.SetTheme("blue"))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, reopened.Theme())
}

func TestStore_Consent(t *testing.T) {
	s, path := openTemp(t)
	assert.False(t, s.HasConsent())

	require.NoError(t, s.SetConsent(true))
	assert.True(t, s.HasConsent(), "cached consent must be invalidated on write")

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.True(t, reopened.HasConsent())

	require.NoError(t, reopened.SetConsent(false))
	assert.False(t, reopened.HasConsent())
}

func TestJar_Persistence(t *testing.T) {
	s, path := openTemp(t)
	base := "http://localhost:8080"
	u, _ := url.Parse(base + "/login")

	jar, err := NewJar(s, base, nil)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "SESSION", Value: "abc", Path: "/"}})

	reopened, err := Open(path)
	require.NoError(t, err)
	restored, err := NewJar(reopened, base, nil)
	require.NoError(t, err)
	cookies := restored.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "SESSION", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)

	require.NoError(t, restored.Clear())
	assert.Empty(t, restored.Cookies(u))
}

func TestStore_RevokeConsentForgetsCookies(t *testing.T) {
	s, path := openTemp(t)
	base := "http://localhost:8080"
	u, _ := url.Parse(base)

	jar, err := NewJar(s, base, nil)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "SESSION", Value: "abc", Path: "/"}})
	require.NoError(t, s.SetConsent(false))

	reopened, err := Open(path)
	require.NoError(t, err)
	restored, err := NewJar(reopened, base, nil)
	require.NoError(t, err)
	assert.Empty(t, restored.Cookies(u))
}
