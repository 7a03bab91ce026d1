// pkg/config/environment.go
package config

import (
	"errors"
	"os"

	"github.com/David-Botos/report-migrator/pkg/browser"
)

// Org credentials never live in the run file; they come from the environment
// (optionally via a .env overlay loaded by the CLI).

// LoadSourceOrg loads the source org's admin credentials from environment
// variables.
func LoadSourceOrg() (browser.Credentials, error) {
	return loadOrg("SOURCE")
}

// LoadTargetOrg loads the target org's admin credentials from environment
// variables.
func LoadTargetOrg() (browser.Credentials, error) {
	return loadOrg("TARGET")
}

func loadOrg(prefix string) (browser.Credentials, error) {
	loginURL := os.Getenv(prefix + "_LOGIN_URL")
	if loginURL == "" {
		return browser.Credentials{}, errors.New(prefix + "_LOGIN_URL environment variable is required")
	}

	username := os.Getenv(prefix + "_USERNAME")
	if username == "" {
		return browser.Credentials{}, errors.New(prefix + "_USERNAME environment variable is required")
	}

	password := os.Getenv(prefix + "_PASSWORD")
	if password == "" {
		return browser.Credentials{}, errors.New(prefix + "_PASSWORD environment variable is required")
	}

	return browser.Credentials{
		LoginURL: loginURL,
		Username: username,
		Password: password,
	}, nil
}

// LoadLogSettings returns the log level and format from the environment,
// defaulting to info-level JSON output.
func LoadLogSettings() (level, format string) {
	return getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "json")
}

// getEnv returns an environment variable or a default.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
