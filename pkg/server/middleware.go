package server

import (
	"net/http"

	"github.com/genielabs/genie-admin/config"
)

const versionHeader = "X-Genie-Version"

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(versionHeader, config.Version)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
