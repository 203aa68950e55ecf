// Package diseaseapi is the read-only client for the disease.sh statistics API.
package diseaseapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/outbreak/internal/model"
)

// Client issues one GET per call. It never retries and imposes no timeout
// of its own; callers bound requests through the context if they need to.
type Client struct {
	http      *resty.Client
	endpoints Endpoints
	metrics   *Metrics
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records request counters and latency in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for baseURL (e.g. "https://disease.sh").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoints: NewEndpoints(baseURL),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	rc := resty.New()
	rc.SetRetryCount(0)
	rc.SetHeader("Accept", "application/json")
	rc.SetHeader("User-Agent", "outbreak")
	rc.SetLogger(restyLogger{c.log})
	c.http = rc

	return c
}

// Endpoints exposes the URL builders used by the client.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// Fetch performs one GET against url and returns the body of a 2xx response.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, "fetch", url, nil)
}

// fetch performs the GET and, for a 2xx response, runs decode on the body
// before the request's single outcome is recorded.
func (c *Client) fetch(ctx context.Context, endpoint, url string, decode func([]byte) error) ([]byte, error) {
	reqID := uuid.NewString()
	start := time.Now()
	c.metrics.begin()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", reqID).
		Get(url)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.observe(endpoint, outcomeNetwork, elapsed)
		c.log.Warn().
			Str("request_id", reqID).
			Str("endpoint", endpoint).
			Str("url", url).
			Err(err).
			Msg("upstream request failed")
		return nil, &model.NetworkError{URL: url, Err: err}
	}

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		c.metrics.observe(endpoint, outcomeStatus, elapsed)
		c.log.Info().
			Str("request_id", reqID).
			Str("endpoint", endpoint).
			Str("url", url).
			Int("status", code).
			Dur("elapsed", elapsed).
			Msg("upstream returned non-2xx")
		return nil, &model.HTTPStatusError{URL: url, Code: code}
	}

	if decode != nil {
		if err := decode(resp.Body()); err != nil {
			c.metrics.observe(endpoint, outcomeSchema, elapsed)
			c.log.Warn().
				Str("request_id", reqID).
				Str("endpoint", endpoint).
				Err(err).
				Msg("upstream body did not decode")
			return nil, &model.SchemaError{Err: fmt.Errorf("decoding %s: %w", endpoint, err)}
		}
	}

	c.metrics.observe(endpoint, outcomeOK, elapsed)
	c.log.Debug().
		Str("request_id", reqID).
		Str("endpoint", endpoint).
		Int("status", code).
		Int("bytes", len(resp.Body())).
		Dur("elapsed", elapsed).
		Msg("upstream request ok")

	return resp.Body(), nil
}

// getJSON fetches url and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, out any) error {
	_, err := c.fetch(ctx, endpoint, url, func(body []byte) error {
		return json.Unmarshal(body, out)
	})
	return err
}

// restyLogger routes resty's internal messages into zerolog so they never
// reach the terminal the TUI is drawing on.
type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
