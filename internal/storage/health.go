// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const healthTimeout = 3 * time.Second

// CheckHealth probes a MinIO endpoint. It tries the liveness endpoint
// first and falls back to a plain GET of the endpoint root, since plain
// S3 servers do not expose the MinIO health route.
func CheckHealth(ctx context.Context, client *http.Client, endpoint string) error {
	if client == nil {
		client = &http.Client{Timeout: healthTimeout}
	}

	healthURL := strings.TrimRight(endpoint, "/") + "/minio/health/live"
	if err := probe(ctx, client, healthURL); err == nil {
		return nil
	}

	if err := probe(ctx, client, endpoint); err != nil {
		return fmt.Errorf("endpoint %s not reachable: %w", endpoint, err)
	}
	return nil
}

func probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}
