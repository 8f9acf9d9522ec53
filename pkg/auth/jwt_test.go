package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genielabs/genie-admin/pkg/models"
)

const testSecret = "test-secret"

var testAdmin = &models.Admin{
	AdminID: "admin-1",
	Email:   "genie@example.com",
	Name:    "Genie",
	Role:    models.AdminRoleGenie,
}

func TestNewTokenAuthRequiresSecret(t *testing.T) {
	_, err := NewTokenAuth("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAccessToken(t *testing.T) {
	tokenAuth, err := NewTokenAuth(testSecret)
	require.NoError(t, err)

	tokenString, err := IssueAccessToken(tokenAuth, testAdmin, time.Minute)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsedToken.Valid)
	assert.Equal(t, "admin-1", claims["sub"])
	assert.Equal(t, "GENIE", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp.Time, 5*time.Second)
}

func TestJWTVerifier(t *testing.T) {
	tokenAuth, err := NewTokenAuth(testSecret)
	require.NoError(t, err)

	var seen *models.Admin
	router := chi.NewRouter()
	router.Use(JWTVerifier(tokenAuth))
	router.Use(Authenticator)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		admin, err := AdminFromContext(r.Context())
		require.NoError(t, err)
		seen = admin
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid JWT token", func(t *testing.T) {
		tokenString, err := IssueAccessToken(tokenAuth, testAdmin, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, testAdmin, seen)
	})

	t.Run("missing JWT token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, res.Body.String())
	})

	t.Run("invalid JWT token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("expired JWT token", func(t *testing.T) {
		claims := map[string]interface{}{"sub": "admin-1"}
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		_, tokenString, err := tokenAuth.Encode(claims)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})
}
