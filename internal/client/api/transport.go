package api

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/mitaina-cli/internal/session"
	"github.com/yndnr/mitaina-cli/internal/telemetry/logger"
	"github.com/yndnr/mitaina-cli/internal/telemetry/metric"
)

// Header names set on outgoing requests.
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	// TokenScheme prefixes the token in the Authorization header.
	TokenScheme = "Token"
)

// authTransport injects the session token and request metadata, and
// records the exchange.
type authTransport struct {
	base      http.RoundTripper
	session   session.Reader
	userAgent string
	log       logger.Logger
	metrics   *metric.Registry
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// RoundTrip must not modify the caller's request.
	req = req.Clone(ctx)

	token, ok, err := t.session.Get(ctx)
	if err != nil {
		t.log.Warn("failed to read session token", "error", err)
		ok = false
	}
	if ok {
		req.Header.Set(HeaderAuthorization, TokenScheme+" "+token)
	}

	reqID := req.Header.Get(HeaderRequestID)
	if reqID == "" {
		reqID = ulid.Make().String()
		req.Header.Set(HeaderRequestID, reqID)
	}
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	log := t.log.With("request_id", reqID)
	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		t.metrics.ObserveTransportError(req.Method, elapsed)
		log.Debug("request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	t.metrics.ObserveRequest(req.Method, resp.StatusCode, elapsed)
	log.Debug("request completed",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status", resp.StatusCode,
		"authenticated", ok,
		"duration", elapsed,
	)
	return resp, nil
}
