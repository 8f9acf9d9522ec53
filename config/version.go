package config

import "fmt"

// Set at build time with -ldflags "-X github.com/genielabs/genie-admin/config.Version=...".
var (
	Version       = "0.3.0"
	CommitHash    = "n/a"
	BuildTime     = "n/a"
	VersionString = fmt.Sprintf("%s-%s (%s)", Version, CommitHash, BuildTime)
)

// UserAgent identifies the admin client to the API.
func UserAgent() string {
	return "genie-admin/" + Version
}
