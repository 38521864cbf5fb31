// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turath/rdm-ops/pkg/types"
)

func healthyServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/minio/health/live" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func stepStatuses(report Report) map[string]string {
	statuses := make(map[string]string, len(report.Steps))
	for _, s := range report.Steps {
		statuses[s.Name] = s.Status
	}
	return statuses
}

func TestWorkflowFullRun(t *testing.T) {
	ts := healthyServer(t)

	var registered []string
	w := &Workflow{
		Storage:    types.StorageConfig{Endpoint: ts.URL, Bucket: "turath-data"},
		HTTPClient: ts.Client(),
		EnsureBucket: func(_ context.Context, bucket string) (bool, error) {
			assert.Equal(t, "turath-data", bucket)
			return true, nil
		},
		RegisterLocation: func(name, uri string, isDefault bool) error {
			registered = append(registered, fmt.Sprintf("%s %s default=%v", name, uri, isDefault))
			return nil
		},
		VerifyStorage: func(context.Context) error { return nil },
	}

	var progress bytes.Buffer
	report := w.Run(context.Background(), &progress)

	assert.True(t, report.Succeeded)
	assert.Equal(t, map[string]string{
		"health": StepOK, "bucket": StepOK, "location": StepOK, "verify": StepOK,
	}, stepStatuses(report))
	assert.Equal(t, []string{"s3 s3://turath-data/ default=true"}, registered)
	assert.Contains(t, progress.String(), "turath-data created")
}

func TestWorkflowHealthFailureAborts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	w := &Workflow{
		Storage:    types.StorageConfig{Endpoint: ts.URL, Bucket: "b"},
		HTTPClient: ts.Client(),
		EnsureBucket: func(context.Context, string) (bool, error) {
			t.Fatal("bucket step should not run after failed health check")
			return false, nil
		},
	}

	report := w.Run(context.Background(), &bytes.Buffer{})

	assert.False(t, report.Succeeded)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, StepFailed, report.Steps[0].Status)
}

func TestWorkflowSkipHealth(t *testing.T) {
	w := &Workflow{
		Storage:          types.StorageConfig{Endpoint: "http://127.0.0.1:1", Bucket: "b"},
		SkipHealth:       true,
		EnsureBucket:     func(context.Context, string) (bool, error) { return false, nil },
		RegisterLocation: func(string, string, bool) error { return nil },
	}

	report := w.Run(context.Background(), &bytes.Buffer{})

	assert.True(t, report.Succeeded)
	assert.Equal(t, StepSkipped, stepStatuses(report)["health"])
	assert.Equal(t, StepSkipped, stepStatuses(report)["verify"])
}

func TestWorkflowVerifyFailureIsWarning(t *testing.T) {
	ts := healthyServer(t)

	w := &Workflow{
		Storage:          types.StorageConfig{Endpoint: ts.URL, Bucket: "b"},
		HTTPClient:       ts.Client(),
		EnsureBucket:     func(context.Context, string) (bool, error) { return false, nil },
		RegisterLocation: func(string, string, bool) error { return nil },
		VerifyStorage:    func(context.Context) error { return fmt.Errorf("object missing") },
	}

	report := w.Run(context.Background(), &bytes.Buffer{})

	assert.True(t, report.Succeeded)
	assert.Equal(t, StepWarning, stepStatuses(report)["verify"])
}

func TestWorkflowLocationFailureAborts(t *testing.T) {
	ts := healthyServer(t)

	w := &Workflow{
		Storage:          types.StorageConfig{Endpoint: ts.URL, Bucket: "b"},
		HTTPClient:       ts.Client(),
		EnsureBucket:     func(context.Context, string) (bool, error) { return false, nil },
		RegisterLocation: func(string, string, bool) error { return fmt.Errorf("cli not found") },
	}

	report := w.Run(context.Background(), &bytes.Buffer{})

	assert.False(t, report.Succeeded)
	assert.Equal(t, StepFailed, stepStatuses(report)["location"])
	assert.NotContains(t, stepStatuses(report), "verify")
}

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup-report.yaml")
	want := Report{
		Endpoint:  "http://127.0.0.1:9000",
		Bucket:    "turath-data",
		Succeeded: true,
		Timestamp: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		Steps: []Step{
			{Name: "health", Status: StepOK, Detail: "http://127.0.0.1:9000"},
			{Name: "bucket", Status: StepOK, Detail: "turath-data exists"},
		},
	}

	require.NoError(t, WriteReport(path, want))

	got, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestCheckHealthFallback(t *testing.T) {
	// No /minio/health/live route, but the root answers 403 like plain S3.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/minio/health/live" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	assert.NoError(t, CheckHealth(context.Background(), ts.Client(), ts.URL))
}

func TestStorageEnv(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "turath-data")

	vars := StorageEnv()
	require.NotEmpty(t, vars)
	assert.Equal(t, "S3_BUCKET_NAME", vars[0].Key)
	assert.Equal(t, "turath-data", vars[0].Value)
	assert.True(t, vars[0].Set)
}
