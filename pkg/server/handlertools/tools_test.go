package handlertools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genielabs/genie-admin/pkg/models"
)

func TestExtractQueryStringValueToInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?param=123", nil)
	got, err := IntFromQuery[int](req, "param")
	assert.NoError(t, err, "IntFromQuery() error = %v", err)
	assert.Equal(t, 123, got, "IntFromQuery() = %v, want %v", got, 123)

	got64, err := IntFromQuery[int64](httptest.NewRequest("GET", "/", nil), "param")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), got64)

	_, err = IntFromQuery[int](httptest.NewRequest("GET", "/?param=abc", nil), "param")
	assert.Error(t, err)
}

func TestRenderError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		status         int
		expectedStatus int
	}{
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError, http.StatusInternalServerError},
		{"not found", models.NewNotFoundError("user u-1"), http.StatusInternalServerError, http.StatusNotFound},
		{"bad request", fmt.Errorf("page: %w", models.ErrBadRequest), http.StatusInternalServerError, http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: Invalid credentials", models.ErrUnauthorized), http.StatusBadRequest, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RenderError(rec, tc.err, tc.status)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body models.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.err.Error(), body.Message)
		})
	}
}
