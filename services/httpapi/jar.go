package httpapi

import (
	"net/http"
	"net/url"
)

// ConsentSource tells whether the user accepted cookies.
type ConsentSource interface {
	HasConsent() bool
}

// ConsentFunc adapts a plain function to ConsentSource.
type ConsentFunc func() bool

func (f ConsentFunc) HasConsent() bool { return f() }

// AlwaysConsent is used by tools that never ask (tests, scripts).
var AlwaysConsent ConsentSource = ConsentFunc(func() bool { return true })

// consentJar only stores and sends cookies while consent is given.
// Consent is read on every call, so revoking it takes effect on the next request.
type consentJar struct {
	jar     http.CookieJar
	consent ConsentSource
}

var _ http.CookieJar = (*consentJar)(nil)

func (j *consentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if !j.consent.HasConsent() {
		return
	}
	j.jar.SetCookies(u, cookies)
}

func (j *consentJar) Cookies(u *url.URL) []*http.Cookie {
	if !j.consent.HasConsent() {
		return nil
	}
	return j.jar.Cookies(u)
}
