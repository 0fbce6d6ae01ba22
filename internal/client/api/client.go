package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yndnr/mitaina-cli/internal/infra/buildinfo"
	"github.com/yndnr/mitaina-cli/internal/infra/tlsroots"
	"github.com/yndnr/mitaina-cli/internal/session"
	"github.com/yndnr/mitaina-cli/internal/telemetry/logger"
	"github.com/yndnr/mitaina-cli/internal/telemetry/metric"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// Config holds the fixed client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// CAFile adds a PEM bundle to the system roots. Ignored when
	// Options.Transport is set.
	CAFile string
}

// Options holds the collaborators injected into a Client.
type Options struct {
	// Transport is the underlying RoundTripper. Defaults to a clone of
	// http.DefaultTransport.
	Transport http.RoundTripper

	// Session supplies and clears the token. Defaults to an empty
	// in-memory store.
	Session session.Store

	// OnSessionExpired runs after a 401 has cleared the token.
	OnSessionExpired func(ctx context.Context)

	Logger    logger.Logger
	Metrics   *metric.Registry
	UserAgent string
}

// Client talks to the API.
type Client struct {
	baseURL   string
	http      *http.Client
	session   session.Store
	onExpired func(ctx context.Context)
	log       logger.Logger
	metrics   *metric.Registry
}

// New creates a Client.
func New(cfg Config, opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rt := opts.Transport
	if rt == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		tlsCfg, err := tlsroots.ClientConfig(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("api: %w", err)
		}
		if tlsCfg != nil {
			t.TLSClientConfig = tlsCfg
		}
		rt = t
	}

	store := opts.Session
	if store == nil {
		store = session.NewMemoryStore("")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = buildinfo.UserAgent()
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:      rt,
				session:   store,
				userAgent: ua,
				log:       log,
				metrics:   opts.Metrics,
			},
		},
		session:   store,
		onExpired: opts.OnSessionExpired,
		log:       log,
		metrics:   opts.Metrics,
	}, nil
}

// BaseURL returns the configured base URL without trailing slashes.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the token store used by the client.
func (c *Client) Session() session.Store {
	return c.session
}

// URL joins rel onto the base URL. Absolute URLs are not special: the
// request always goes to the configured host, so the token never leaves it.
// Callers holding a pagination link use NormalizePageURL first.
func (c *Client) URL(rel string) string {
	return c.baseURL + "/" + strings.TrimLeft(rel, "/")
}

// Do sends a request and classifies the response. body, when non-nil,
// is encoded as JSON. On a non-2xx status the body is consumed and a
// *StatusError is returned; on 2xx the caller owns resp.Body.
func (c *Client) Do(ctx context.Context, method, rel string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(rel), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rel, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	statusErr := newStatusError(method, rel, resp)
	if resp.StatusCode == http.StatusUnauthorized {
		c.expire(ctx)
	}
	return nil, statusErr
}

// expire clears the token and notifies the owner. It runs for every
// 401, so concurrent failures each clear and notify.
func (c *Client) expire(ctx context.Context) {
	// The token must go even when the request context is already done.
	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Warn("failed to clear session token", "error", err)
	}
	c.metrics.ObserveSessionExpired()
	c.log.Debug("session expired")
	if c.onExpired != nil {
		c.onExpired(ctx)
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rel string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, rel, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, rel string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, rel, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, rel string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPatch, rel, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, rel string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, rel, nil)
}

// Call sends a request and decodes the response into out (may be nil).
func (c *Client) Call(ctx context.Context, method, rel string, in, out any) error {
	resp, err := c.Do(ctx, method, rel, in)
	if err != nil {
		return err
	}
	return Decode(resp, out)
}

// Decode reads a JSON response body into target and closes it.
// A nil target or an empty body discards the payload.
func Decode(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if target == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
