// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that talk to the
// repository platform or the object store.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "rdm-ops/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// InsecureSkipVerify disables TLS certificate verification. Local
	// development instances run behind self-signed certificates.
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// ClientConfig holds settings for the platform REST client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the platform API base (default "https://127.0.0.1:5000").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Token is the bearer token for authenticated API calls.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited or
	// temporarily unavailable responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// IIIFConfig holds the manifest search-injection options.
type IIIFConfig struct {
	// SearchEnabled gates search service injection; when false manifests
	// pass through unmodified.
	SearchEnabled bool `json:"search_enabled" yaml:"search_enabled"`

	// SearchServiceBaseURL is the base IRI of the search backend
	// (default "https://127.0.0.1:5001").
	SearchServiceBaseURL string `json:"search_service_base_url" yaml:"search_service_base_url"`
}

// StorageConfig holds S3/MinIO connection settings.
type StorageConfig struct {
	// Endpoint is the object store endpoint URL
	// (e.g. "http://127.0.0.1:9000" for a local MinIO).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Region is the S3 region (MinIO accepts any non-empty value).
	Region string `json:"region" yaml:"region"`

	// Bucket is the bucket backing the default storage location.
	Bucket string `json:"bucket" yaml:"bucket"`

	// AccessKeyID and SecretAccessKey are the object store credentials.
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty"`

	// ForcePathStyle addresses buckets as path components rather than
	// virtual hosts. Required for MinIO.
	ForcePathStyle bool `json:"force_path_style" yaml:"force_path_style"`
}

// VerifyConfig holds settings for the verification commands.
type VerifyConfig struct {
	// LedgerPath is the SQLite database recording verification runs
	// (default ".rdm-ops/verify.db").
	LedgerPath string `json:"ledger_path" yaml:"ledger_path"`

	// MaxHistory is the default number of runs shown by verify history.
	MaxHistory int `json:"max_history" yaml:"max_history"`
}

// OpsConfig groups all tool configuration sections.
type OpsConfig struct {
	Client  ClientConfig  `json:"client" yaml:"client"`
	IIIF    IIIFConfig    `json:"iiif" yaml:"iiif"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Verify  VerifyConfig  `json:"verify" yaml:"verify"`
}
