// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/turath/rdm-ops/pkg/types"
)

// locationName is the files location registered for the S3 backend.
const locationName = "s3"

// Step statuses recorded in the workflow report.
const (
	StepOK      = "ok"
	StepSkipped = "skipped"
	StepWarning = "warning"
	StepFailed  = "failed"
)

// Step is one executed workflow step.
type Step struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
	Detail string `yaml:"detail,omitempty"`
}

// Report is the saved outcome of a setup run.
type Report struct {
	Endpoint  string    `yaml:"endpoint"`
	Bucket    string    `yaml:"bucket"`
	Steps     []Step    `yaml:"steps"`
	Succeeded bool      `yaml:"succeeded"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Workflow drives the object-store setup sequence: health probe, bucket
// ensure, location registration, and a post-setup verification. The
// collaborator funcs are injected so the sequence is testable without a
// live MinIO or platform CLI.
type Workflow struct {
	Storage    types.StorageConfig
	SkipHealth bool

	// HTTPClient is used for the health probe; nil gets a short-timeout
	// default.
	HTTPClient *http.Client

	// EnsureBucket checks/creates the bucket, reporting whether it was
	// created.
	EnsureBucket func(ctx context.Context, bucket string) (bool, error)

	// RegisterLocation registers the files location with the platform.
	RegisterLocation func(name, uri string, isDefault bool) error

	// VerifyStorage optionally checks the finished setup; a failure is a
	// warning, not a workflow failure, matching the operator habit of
	// eyeballing verification output.
	VerifyStorage func(ctx context.Context) error
}

// Run executes the workflow and returns its report. Progress lines go to
// progress as each step completes. A failed step aborts the remaining
// steps.
func (w *Workflow) Run(ctx context.Context, progress io.Writer) Report {
	report := Report{
		Endpoint:  w.Storage.Endpoint,
		Bucket:    w.Storage.Bucket,
		Succeeded: true,
		Timestamp: time.Now().UTC(),
	}

	record := func(step Step) {
		report.Steps = append(report.Steps, step)
		fmt.Fprintf(progress, "%-16s %s %s\n", step.Name, step.Status, step.Detail)
		if step.Status == StepFailed {
			report.Succeeded = false
		}
	}

	if w.SkipHealth {
		record(Step{Name: "health", Status: StepSkipped})
	} else if err := CheckHealth(ctx, w.HTTPClient, w.Storage.Endpoint); err != nil {
		record(Step{Name: "health", Status: StepFailed, Detail: err.Error()})
		return report
	} else {
		record(Step{Name: "health", Status: StepOK, Detail: w.Storage.Endpoint})
	}

	created, err := w.EnsureBucket(ctx, w.Storage.Bucket)
	if err != nil {
		record(Step{Name: "bucket", Status: StepFailed, Detail: err.Error()})
		return report
	}
	detail := "exists"
	if created {
		detail = "created"
	}
	record(Step{Name: "bucket", Status: StepOK, Detail: w.Storage.Bucket + " " + detail})

	uri := "s3://" + w.Storage.Bucket + "/"
	if err := w.RegisterLocation(locationName, uri, true); err != nil {
		record(Step{Name: "location", Status: StepFailed, Detail: err.Error()})
		return report
	}
	record(Step{Name: "location", Status: StepOK, Detail: locationName + " -> " + uri})

	if w.VerifyStorage == nil {
		record(Step{Name: "verify", Status: StepSkipped})
	} else if err := w.VerifyStorage(ctx); err != nil {
		record(Step{Name: "verify", Status: StepWarning, Detail: err.Error()})
	} else {
		record(Step{Name: "verify", Status: StepOK})
	}

	return report
}

// WriteReport saves a workflow report to a YAML file.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously saved workflow report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &report, nil
}
