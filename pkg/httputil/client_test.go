package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryableHTTPClientSingleAttempt(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewRetryableHTTPClient(0, 0, nil)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNoRetryOnClientErrorPolicy(t *testing.T) {
	ctx := context.Background()

	retry, err := NoRetryOnClientErrorPolicy(ctx, &http.Response{StatusCode: http.StatusUnauthorized}, nil)
	assert.NoError(t, err)
	assert.False(t, retry)

	retry, _ = NoRetryOnClientErrorPolicy(ctx, &http.Response{StatusCode: http.StatusBadGateway}, nil)
	assert.True(t, retry)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err = NoRetryOnClientErrorPolicy(cancelled, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, retry)
}
