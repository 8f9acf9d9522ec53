package adminapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/tokenstore"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, tokenstore.Storage) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	storage := tokenstore.NewMemoryStorage()
	return NewClient(srv.URL+"/", storage, opts...), storage
}

func TestErrorExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
		sentinel error
	}{
		{"message field", http.StatusUnauthorized, `{"message":"Invalid credentials"}`, "Invalid credentials", models.ErrUnauthorized},
		{"error field", http.StatusBadRequest, `{"error":"page_size too large"}`, "page_size too large", models.ErrBadRequest},
		{"message wins", http.StatusNotFound, `{"message":"user not found","error":"nf"}`, "user not found", models.ErrNotFound},
		{"plain text body", http.StatusInternalServerError, "boom", "list users failed: HTTP 500 Internal Server Error", nil},
		{"empty json", http.StatusServiceUnavailable, `{}`, "list users failed: HTTP 503 Service Unavailable", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.ListUsers(context.Background(), models.ListUsersParams{})
			require.Error(t, err)
			assert.Equal(t, tc.expected, err.Error())

			var apiErr *models.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, "list users", apiErr.Operation)
			if tc.sentinel != nil {
				assert.ErrorIs(t, err, tc.sentinel)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", tokenstore.NewMemoryStorage())

	_, err := client.GetUser(context.Background(), "u1")
	require.Error(t, err)

	var apiErr *models.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "get user failed:")
}

func TestBearerToken(t *testing.T) {
	var seen []string
	client, storage := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		assert.Equal(t, config.UserAgent(), r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"users":[],"totalCount":0,"page":1,"pageSize":20,"totalPages":0}`))
	})
	ctx := context.Background()

	_, err := client.ListUsers(ctx, models.ListUsersParams{})
	require.NoError(t, err)

	require.NoError(t, storage.Set(ctx, tokenstore.AccessTokenKey, "abc"))
	_, err = client.ListUsers(ctx, models.ListUsersParams{})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, seen)
}

func TestLoginDoesNotSendOrStoreTokens(t *testing.T) {
	client, storage := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/admin/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"accessToken":"a","refreshToken":"r","admin":{"adminId":"g1","email":"g@example.com","name":"G","role":"GENIE"}}`))
	})
	ctx := context.Background()
	require.NoError(t, storage.Set(ctx, tokenstore.AccessTokenKey, "stale"))

	resp, err := client.Login(ctx, "g@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, models.AdminRoleGenie, resp.Admin.Role)

	token, _, err := storage.Get(ctx, tokenstore.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "stale", token)
}

func TestQueryParameters(t *testing.T) {
	var got []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.RequestURI())
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	_, err := client.ListUsers(ctx, models.ListUsersParams{Page: 2, PageSize: 20, SortBy: "name", AccountStatus: models.AccountStatusActive})
	require.NoError(t, err)
	_, err = client.SearchUsers(ctx, models.SearchUsersParams{Query: "ava stone", Page: 1})
	require.NoError(t, err)
	_, err = client.GetUser(ctx, "a/b")
	require.NoError(t, err)
	_, err = client.GetSuggestions(ctx, "u1", 5)
	require.NoError(t, err)
	_, err = client.ListDates(ctx, models.ListDatesParams{GenieID: "g1", Status: models.DateStatusScheduled})
	require.NoError(t, err)
	_, err = client.UpdateDate(ctx, "d1", &models.UpdateDateRequest{Status: models.DateStatusCompleted})
	require.NoError(t, err)
	_, err = client.CreateDate(ctx, &models.CreateDateRequest{User1ID: "u1", User2ID: "u2"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/v1/admin/users?account_status=active&page=2&page_size=20&sort_by=name",
		"GET /api/v1/admin/users/search?page=1&q=ava+stone",
		"GET /api/v1/admin/users/a%2Fb",
		"GET /api/v1/admin/suggestions/u1?limit=5",
		"GET /api/v1/admin/dates?genie_id=g1&status=scheduled",
		"PUT /api/v1/admin/dates/d1",
		"POST /api/v1/admin/dates",
	}, got)
}

func TestDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users": "nope"}`))
	})

	_, err := client.ListUsers(context.Background(), models.ListUsersParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users failed: unable to decode response")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/admin/login" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, WithMetrics(metrics))
	ctx := context.Background()

	_, err := client.Login(ctx, "g@example.com", "bad")
	require.Error(t, err)
	_, err = client.GetUser(ctx, "u1")
	require.NoError(t, err)
	_, err = client.GetUser(ctx, "u2")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("login", "401")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("get user", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.Duration))
}

func TestServerVersionCheck(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(VersionHeader, "0.0.9")
		_, _ = w.Write([]byte(`{}`))
	}, WithMinServerVersion("0.1.0"), WithMinServerVersion("not-a-version"))

	require.NotNil(t, client.minServerVersion)
	assert.Equal(t, "0.1.0", client.minServerVersion.String())

	_, err := client.GetUser(context.Background(), "u1")
	assert.NoError(t, err)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "g1", "exp": exp.Unix()})
	signed, err := token.SignedString([]byte("any-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "g1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)

	_, ok = TokenExpiry("opaque-token")
	assert.False(t, ok)
}
