// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package invenio

import "fmt"

// CreateLocation registers a files storage location with the platform,
// optionally marking it as the default. The location URI for an S3 bucket
// is "s3://<bucket>/".
func CreateLocation(r *Runner, name, uri string, isDefault bool) error {
	if name == "" || uri == "" {
		return fmt.Errorf("location name and uri are required")
	}

	args := []string{"files", "location", name, uri}
	if isDefault {
		args = append(args, "--default")
	}

	if _, err := r.Invenio(args...); err != nil {
		return fmt.Errorf("creating location %s -> %s: %w", name, uri, err)
	}
	return nil
}

// S3LocationURI builds the canonical location URI for a bucket.
func S3LocationURI(bucket string) string {
	return "s3://" + bucket + "/"
}
