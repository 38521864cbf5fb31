// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package invenio provisions the host repository platform by shelling out
// to its management CLI: admin users, API tokens, and storage locations.
package invenio

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const binInvenio = "invenio"

// executor abstracts command execution for testing.
type executor interface {
	Run(name string, args []string) (stdout, stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) Run(name string, args []string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var defaultExec executor = &osExecutor{}

// Runner executes platform CLI commands, prefixed with "pipenv run"
// unless the process already runs inside an activated pipenv shell.
type Runner struct {
	prefix []string
	exec   executor
}

// NewRunner detects the environment and returns a ready Runner.
func NewRunner() *Runner {
	return newRunner(defaultExec, os.Getenv("PIPENV_ACTIVE") != "")
}

func newRunner(exec executor, pipenvActive bool) *Runner {
	r := &Runner{exec: exec}
	if !pipenvActive {
		r.prefix = []string{"pipenv", "run"}
	}
	return r
}

// Invenio runs one platform CLI command and returns its stdout. On
// failure the error carries the command and its captured stderr.
func (r *Runner) Invenio(args ...string) (string, error) {
	argv := make([]string, 0, len(r.prefix)+1+len(args))
	argv = append(argv, r.prefix...)
	argv = append(argv, binInvenio)
	argv = append(argv, args...)

	stdout, stderr, err := r.exec.Run(argv[0], argv[1:])
	if err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = strings.TrimSpace(stdout)
		}
		return stdout, fmt.Errorf("invenio %s: %w: %s", strings.Join(args, " "), err, detail)
	}
	return stdout, nil
}
