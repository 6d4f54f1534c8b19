// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults applied when a setting is left unset.
const (
	DefaultBaseURL       = "http://localhost:8080/api"
	DefaultTimeout       = 30 * time.Second
	DefaultUploadTimeout = 300 * time.Second
	DefaultUserAgent     = "anomaly-console/0.1"
	DefaultPageSize      = 20
	DefaultServeAddr     = ":8090"
	DefaultArchiveDir    = ".anomaly-console"
)

// HTTPConfig holds shared HTTP settings for requests to the analysis backend.
type HTTPConfig struct {
	// Timeout bounds each request. On expiry the call fails like any
	// other transport error.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ClientConfig configures the backend client. It is immutable once the
// client is built.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the absolute backend prefix every path is joined to
	// (e.g. "http://localhost:8080/api").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// UploadTimeout bounds spreadsheet uploads, which the backend analyses
	// synchronously and can take minutes.
	UploadTimeout time.Duration `json:"upload_timeout" yaml:"upload_timeout" mapstructure:"upload_timeout"`

	// APIToken, when set, is sent as a bearer token.
	APIToken string `json:"-" yaml:"-" mapstructure:"api_token"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UploadTimeout == 0 {
		c.UploadTimeout = DefaultUploadTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// Validate rejects relative base URLs and non-positive timeouts.
func (c ClientConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("upload_timeout must be positive, got %v", c.UploadTimeout)
	}
	return nil
}

// ServeConfig holds settings for the dashboard server.
type ServeConfig struct {
	// Addr is the listen address (default ":8090").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// PageSize is the dashboard's default page size (default 20).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// LogFormat selects the server's log encoding: console or json.
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
}

// ArchiveConfig holds settings for the local snapshot archive.
type ArchiveConfig struct {
	// Dir contains snapshots.db.
	Dir string `json:"archive_dir" yaml:"archive_dir" mapstructure:"archive_dir"`
}

// Config groups every setting the CLI reads.
type Config struct {
	Client   ClientConfig  `json:"client" yaml:"client" mapstructure:",squash"`
	Serve    ServeConfig   `json:"serve" yaml:"serve" mapstructure:",squash"`
	Archive  ArchiveConfig `json:"archive" yaml:"archive" mapstructure:",squash"`
	LogLevel string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
