package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

const defaultTimeout = 30 * time.Second

type Options struct {
	BaseURL string
	Timeout time.Duration
	// Consent gates credentials: cookies are attached and stored only while it reports true.
	Consent ConsentSource
	// Jar defaults to an in-memory cookiejar.
	Jar    http.CookieJar
	Logger core.Logger
	// OnUnauthorized is called on every 401 response, except for calls made with SkipUnauthorized.
	OnUnauthorized func()
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is the single configured client every backend call goes through.
type Client struct {
	baseURL        *url.URL
	timeout        time.Duration
	http           *http.Client
	logger         core.Logger
	onUnauthorized func()
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing base URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("invalid base URL %q", opts.BaseURL)
	}

	jar := opts.Jar
	if jar == nil {
		if jar, err = cookiejar.New(nil); err != nil {
			return nil, errors.Wrap(err, "creating cookie jar")
		}
	}
	consent := opts.Consent
	if consent == nil {
		consent = AlwaysConsent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		timeout: timeout,
		http: &http.Client{
			Transport: transport,
			Jar:       &consentJar{jar: jar, consent: consent},
		},
		logger:         opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

// SetUnauthorizedHandler replaces the 401 callback.
// The session manager is built after the client, so it registers itself here.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) BaseURL() string { return c.baseURL.String() }

type callOptions struct {
	query            url.Values
	timeout          time.Duration
	username         string
	password         string
	basicAuth        bool
	skipUnauthorized bool
}

type CallOption func(*callOptions)

func WithQuery(q url.Values) CallOption {
	return func(o *callOptions) { o.query = q }
}

// WithTimeout overrides the client timeout for one call.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

func WithBasicAuth(username, password string) CallOption {
	return func(o *callOptions) {
		o.basicAuth = true
		o.username = username
		o.password = password
	}
}

// SkipUnauthorized keeps a 401 from triggering the unauthorized callback (used by the login call).
func SkipUnauthorized() CallOption {
	return func(o *callOptions) { o.skipUnauthorized = true }
}

func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...CallOption) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...CallOption) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...CallOption) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, opts)
}

// GetRaw returns the undecoded JSON body, for payloads whose shape varies (eg. page envelopes).
func (c *Client) GetRaw(ctx context.Context, path string, opts ...CallOption) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "application/json", opts)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Download is a binary response.
type Download struct {
	Data               []byte
	ContentType        string
	ContentDisposition string
}

func (c *Client) Download(ctx context.Context, path string, opts ...CallOption) (*Download, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "*/*", opts)
	if err != nil {
		return nil, err
	}
	return &Download{
		Data:               resp.body,
		ContentType:        resp.header.Get("Content-Type"),
		ContentDisposition: resp.header.Get("Content-Disposition"),
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}, opts []CallOption) error {
	var reqBody []byte
	if body != nil {
		var err error
		if reqBody, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}
	resp, err := c.do(ctx, method, path, reqBody, "application/json", opts)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	return errors.Wrapf(json.Unmarshal(resp.body, out), "decoding %s %s response", method, path)
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, accept string, opts []CallOption) (*response, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	timeout := c.timeout
	if co.timeout > 0 {
		timeout = co.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.resolve(path, co.query)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if co.basicAuth {
		req.SetBasicAuth(co.username, co.password)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.debug("request failed", method, u, 0, start, err)
		return nil, &TransportError{Method: method, URL: u, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: u, Err: errors.Wrap(err, "reading response body")}
	}
	c.debug("request done", method, u, res.StatusCode, start, nil)

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(method, path, res.StatusCode, data)
		if res.StatusCode == http.StatusUnauthorized && !co.skipUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, apiErr
	}
	return &response{status: res.StatusCode, header: res.Header, body: data}, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// debug writes request diagnostics, only when the logger runs in debug mode.
func (c *Client) debug(msg, method, u string, status int, start time.Time, err error) {
	if c.logger == nil || !c.logger.IsDebug() {
		return
	}
	fields := map[string]interface{}{
		"method":  method,
		"url":     u,
		"elapsed": time.Since(start).String(),
	}
	if status > 0 {
		fields["status"] = status
	}
	if err != nil {
		c.logger.Debug(msg, err, fields)
		return
	}
	c.logger.Debug(msg, fields)
}
