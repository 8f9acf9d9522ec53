package httputil

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/genielabs/genie-admin/internal"
)

var log = internal.GetLogger()

const (
	MaxIdleConns        = 100
	MaxIdleConnsPerHost = 20
	IdleConnTimeout     = 30 * time.Second
)

// HTTPClient is satisfied by *http.Client and by test doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewRetryableHTTPClient returns an *http.Client backed by retryablehttp and wrapped in an
// OpenTelemetry transport. retryMax of zero performs exactly one attempt. A zero timeout
// keeps the platform default (no client-side deadline).
func NewRetryableHTTPClient(
	retryMax int,
	timeout time.Duration,
	retryPolicy retryablehttp.CheckRetry,
) *http.Client {
	if retryPolicy == nil {
		retryPolicy = NoRetryOnClientErrorPolicy
	}

	httpClient := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				MaxIdleConns:          MaxIdleConns,
				MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
				IdleConnTimeout:       IdleConnTimeout,
				ResponseHeaderTimeout: timeout,
			}, otelhttp.WithClientTrace(
				func(ctx context.Context) *httptrace.ClientTrace {
					return otelhttptrace.NewClientTrace(ctx)
				}),
			),
		},
		Logger:       internal.NewLeveledLogrus(log),
		RetryMax:     retryMax,
		RetryWaitMin: retryablehttp.NewClient().RetryWaitMin,
		RetryWaitMax: retryablehttp.NewClient().RetryWaitMax,
		Backoff:      retryablehttp.DefaultBackoff,
		CheckRetry:   retryPolicy,
		// return the last response rather than a "giving up" error
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return httpClient.StandardClient()
}

// NoRetryOnClientErrorPolicy is retryablehttp.DefaultRetryPolicy minus retries of 4xx responses.
func NoRetryOnClientErrorPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false, nil
	}

	if resp != nil && resp.StatusCode >= 500 {
		log.Warn("Retry policy invoked with response ", resp.Status)
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}
