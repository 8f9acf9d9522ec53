package handlertools

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/genielabs/genie-admin/internal"
	"github.com/genielabs/genie-admin/pkg/models"
)

var log = internal.GetLogger()

// IntFromQuery extracts a query string value and converts it to an int
// if it is not empty. If the value is empty, it returns 0.
func IntFromQuery[T ~int | int32 | int64](
	r *http.Request,
	param string,
) (T, error) {
	bitsize := 0

	p := r.URL.Query().Get(param)
	var pInt T
	if p != "" {
		switch any(pInt).(type) {
		case int:
		case int32:
			bitsize = 32
		case int64:
			bitsize = 64
		default:
			return 0, errors.New("unsupported type")
		}

		pInt, err := strconv.ParseInt(p, 10, bitsize)
		if err != nil {
			return 0, err
		}
		return T(pInt), nil
	}
	return 0, nil
}

// EncodeJSON writes data as a JSON response with the given status code.
func EncodeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(data)
}

// RenderError renders an error response as {"message": "..."}. Sentinel errors from
// pkg/models override the given status.
func RenderError(w http.ResponseWriter, err error, status int) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrBadRequest):
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		log.Error(err)
	} else {
		log.Debug(err)
	}

	if encErr := EncodeJSON(w, status, models.ErrorBody{Message: err.Error()}); encErr != nil {
		log.Errorf("failed to write error response: %v", encErr)
	}
}
