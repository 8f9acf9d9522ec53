// Package adminapi is the HTTP client for the admin REST API. It is stateless apart
// from reading the bearer token from durable storage.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/internal"
	"github.com/genielabs/genie-admin/pkg/httputil"
	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/tokenstore"
)

var log = internal.GetLogger()

const (
	APIPrefix     = "/api/v1/admin"
	VersionHeader = "X-Genie-Version"
)

type Client struct {
	baseURL    string
	httpClient httputil.HTTPClient
	storage    tokenstore.Storage
	metrics    *Metrics

	minServerVersion *semver.Version
	versionOnce      sync.Once
}

type Option func(*Client)

func WithHTTPClient(c httputil.HTTPClient) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithMetrics(m *Metrics) Option {
	return func(client *Client) {
		client.metrics = m
	}
}

// WithMinServerVersion makes the client warn once when the backend reports an older version.
func WithMinServerVersion(v string) Option {
	return func(client *Client) {
		if v == "" {
			return
		}
		minVersion, err := semver.NewVersion(v)
		if err != nil {
			log.Warnf("ignoring invalid minimum server version %q: %v", v, err)
			return
		}
		client.minServerVersion = minVersion
	}
}

// NewClient creates a client for the API rooted at baseURL. Tokens are read from storage.
func NewClient(baseURL string, storage tokenstore.Storage, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		storage: storage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = httputil.NewRetryableHTTPClient(0, 0, nil)
	}
	return c
}

// NewClientFromConfig wires the retry, timeout and version settings from cfg. Metrics are
// registered on reg when it is non-nil.
func NewClientFromConfig(
	cfg *config.Config,
	storage tokenstore.Storage,
	reg prometheus.Registerer,
) *Client {
	opts := []Option{
		WithHTTPClient(httputil.NewRetryableHTTPClient(cfg.API.RetryMax, cfg.RequestTimeout(), nil)),
		WithMinServerVersion(cfg.API.MinServerVersion),
	}
	if reg != nil {
		opts = append(opts, WithMetrics(NewMetrics(reg)))
	}
	return NewClient(cfg.API.BaseURL, storage, opts...)
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do performs one request and decodes a 2xx JSON body into out. Any failure is
// returned as *models.APIError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	start := time.Now()

	httpReq, err := c.newRequest(ctx, r)
	if err != nil {
		return &models.APIError{Operation: r.op, Message: fmt.Sprintf("%s failed: %v", r.op, err), Err: err}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(r.op, 0, time.Since(start))
		return &models.APIError{Operation: r.op, Message: fmt.Sprintf("%s failed: %v", r.op, err), Err: err}
	}
	defer resp.Body.Close()

	c.metrics.observe(r.op, resp.StatusCode, time.Since(start))
	c.checkServerVersion(resp.Header.Get(VersionHeader))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.APIError{
			Operation:  r.op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s failed: %v", r.op, err),
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(r.op, resp.StatusCode, body)
	}

	log.WithField("operation", r.op).WithField("status", resp.StatusCode).Debug("admin api call succeeded")

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &models.APIError{
			Operation:  r.op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s failed: unable to decode response: %v", r.op, err),
			Err:        err,
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader = http.NoBody
	if r.body != nil {
		p, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(p)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.UserAgent())
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.auth && c.storage != nil {
		token, ok, err := c.storage.Get(ctx, tokenstore.AccessTokenKey)
		if err != nil {
			return nil, fmt.Errorf("unable to read access token: %w", err)
		}
		if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

// errorFromResponse extracts the server message from a non-2xx body, preferring the
// message field, then the error field, then a status derived fallback.
func errorFromResponse(op string, status int, body []byte) *models.APIError {
	apiErr := &models.APIError{Operation: op, StatusCode: status}

	var eb models.ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Message != "":
			apiErr.Message = eb.Message
		case eb.Error != "":
			apiErr.Message = eb.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("%s failed: HTTP %d %s", op, status, http.StatusText(status))
	}
	return apiErr
}

func (c *Client) checkServerVersion(header string) {
	if c.minServerVersion == nil || header == "" {
		return
	}
	fields := strings.Fields(header)
	v, err := semver.NewVersion(fields[0])
	if err != nil {
		log.Debugf("unable to parse server version %q: %v", header, err)
		return
	}
	if v.LessThan(c.minServerVersion) {
		c.versionOnce.Do(func() {
			log.Warnf(
				"admin API version %s is older than the minimum supported version %s",
				v, c.minServerVersion,
			)
		})
	}
}

func escape(id string) string {
	return url.PathEscape(id)
}
