package bpclient

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/ghodss/yaml.v1"
)

// Environment variables read by ProjectConfigFromEnvironment.
const (
	// EnvProjectURL is the environment variable holding the project's base URL.
	EnvProjectURL = "BASEPLANE_URL"

	// EnvAPIKey is the environment variable holding the project's public API key.
	EnvAPIKey = "BASEPLANE_ANON_KEY"
)

// ProjectConfig identifies a Baseplane project. It is required when constructing a Client.
//
// Both values are public: the API key is not a secret, since access control is enforced by the
// service's row-level policies rather than by confidentiality of the key. Both values are also
// required; Validate reports a ConfigError if either is missing or malformed.
type ProjectConfig struct {
	// URL is the project's base URL, such as "https://myproject.baseplane.io".
	URL string `json:"url"`

	// Key is the project's public API key.
	Key string `json:"key"`
}

// ConfigError is returned when a Client cannot be constructed because the configuration is
// missing or invalid. It identifies the offending property, so that misconfiguration surfaces
// clearly at startup rather than as a failing request later.
type ConfigError struct {
	// Field is the name of the configuration property that is missing or invalid.
	Field string

	// Reason describes the problem.
	Reason string
}

// Error returns a string representation of the error.
func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid client configuration: %s %s", e.Field, e.Reason)
}

// Validate returns a ConfigError if the project configuration is incomplete or malformed, or
// nil if it is usable.
func (p ProjectConfig) Validate() error {
	if p.URL == "" {
		return ConfigError{Field: "URL", Reason: "must not be empty"}
	}
	parsed, err := url.Parse(p.URL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ConfigError{Field: "URL", Reason: fmt.Sprintf("%q is not a valid http or https URL", p.URL)}
	}
	if p.Key == "" {
		return ConfigError{Field: "Key", Reason: "must not be empty"}
	}
	return nil
}

// ProjectConfigFromEnvironment reads the project configuration from the BASEPLANE_URL and
// BASEPLANE_ANON_KEY environment variables, validating it before returning.
//
// The environment is read once, when this function is called; the returned value is an
// explicit configuration that can be passed around and substituted in tests.
func ProjectConfigFromEnvironment() (ProjectConfig, error) {
	p := ProjectConfig{
		URL: os.Getenv(EnvProjectURL),
		Key: os.Getenv(EnvAPIKey),
	}
	if err := p.Validate(); err != nil {
		return ProjectConfig{}, err
	}
	return p, nil
}

// ProjectConfigFromFile reads the project configuration from a YAML or JSON file with the
// fields "url" and "key", validating it before returning.
func ProjectConfigFromFile(path string) (ProjectConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: ok to read file into variable
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("unable to read configuration file: %w", err)
	}
	var p ProjectConfig
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ProjectConfig{}, fmt.Errorf("error parsing configuration file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return ProjectConfig{}, err
	}
	return p, nil
}
