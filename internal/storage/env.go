// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import "os"

// storageEnvKeys are the environment variables the platform's S3 storage
// plugin reads. `storage env` prints them for debugging misconfigured
// deployments.
var storageEnvKeys = []string{
	"S3_BUCKET_NAME",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_DEFAULT_REGION",
	"AWS_ENDPOINT_URL",
	"AWS_S3_ADDRESSING_STYLE",
	"AWS_S3_SIGNATURE_VERSION",
	"S3_REGION",
	"S3_ENDPOINT_URL",
	"S3_SIGNATURE_VERSION",
	"S3_SECURE",
}

// EnvVar is one environment variable and its current value.
type EnvVar struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Set   bool   `json:"set" yaml:"set"`
}

// StorageEnv returns the storage-related environment variables in a fixed
// order, marking unset ones.
func StorageEnv() []EnvVar {
	vars := make([]EnvVar, 0, len(storageEnvKeys))
	for _, k := range storageEnvKeys {
		v, ok := os.LookupEnv(k)
		vars = append(vars, EnvVar{Key: k, Value: v, Set: ok})
	}
	return vars
}
