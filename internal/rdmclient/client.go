// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdmclient is a REST client for the repository platform API.
// It covers the record and files endpoints the verification commands
// need; record storage itself belongs to the platform.
package rdmclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/turath/rdm-ops/internal/httputil"
	"github.com/turath/rdm-ops/pkg/types"
)

// DefaultBaseURL is the local development API address the scripts this
// tool replaces were written against.
const DefaultBaseURL = "https://127.0.0.1:5000"

const defaultTimeout = 30 * time.Second

// Client talks to the platform REST API with bearer-token auth.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	maxRetries int
}

// New builds a Client from config. An empty base URL falls back to
// DefaultBaseURL. InsecureSkipVerify is honored because local instances
// serve self-signed TLS.
func New(cfg types.ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		baseURL:    baseURL,
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path)
	if err != nil {
		return nil, err
	}
	return httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
}

// ListFiles returns the file entries for a record. The files API answers
// either {"entries": [...]} or a bare list depending on platform version;
// both shapes are accepted.
func (c *Client) ListFiles(ctx context.Context, pid string) ([]types.FileEntry, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/records/"+url.PathEscape(pid)+"/files")
	if err != nil {
		return nil, fmt.Errorf("listing files for %s: %w", pid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("files API returned HTTP %d for %s", resp.StatusCode, pid)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading files response: %w", err)
	}

	var wrapped struct {
		Entries []types.FileEntry `json:"entries"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Entries != nil {
		return wrapped.Entries, nil
	}

	var bare []types.FileEntry
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("unexpected files API response shape for %s: expected list or object with entries", pid)
}

// GetRecord fetches the full record JSON.
func (c *Client) GetRecord(ctx context.Context, pid string) (map[string]any, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/records/"+url.PathEscape(pid))
	if err != nil {
		return nil, fmt.Errorf("fetching record %s: %w", pid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("records API returned HTTP %d for %s", resp.StatusCode, pid)
	}

	var record map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", pid, err)
	}
	return record, nil
}

// HeadFileContent issues a HEAD against the file content endpoint and
// returns the reported Content-Length, or -1 when the header is absent,
// unparseable, or the request failed with a non-2xx status.
func (c *Client) HeadFileContent(ctx context.Context, pid, key string) (int64, error) {
	resp, err := c.do(ctx, http.MethodHead, c.contentPath(pid, key))
	if err != nil {
		return -1, fmt.Errorf("HEAD %s/%s: %w", pid, key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return -1, nil
	}

	cl := resp.Header.Get("Content-Length")
	if cl == "" {
		return -1, nil
	}
	n, err := strconv.ParseInt(cl, 10, 64)
	if err != nil {
		return -1, nil
	}
	return n, nil
}

// OpenFileContent streams the file content. The caller must close the
// returned reader.
func (c *Client) OpenFileContent(ctx context.Context, pid, key string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, c.contentPath(pid, key))
	if err != nil {
		return nil, fmt.Errorf("downloading %s/%s: %w", pid, key, err)
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("content API returned HTTP %d for %s/%s", resp.StatusCode, pid, key)
	}

	return resp.Body, nil
}

func (c *Client) contentPath(pid, key string) string {
	return "/api/records/" + url.PathEscape(pid) + "/files/" + url.PathEscape(key) + "/content"
}

// SelectFile picks the entry to verify: the named one when filename is
// set, otherwise the first. An unknown filename is an error.
func SelectFile(entries []types.FileEntry, filename string) (types.FileEntry, error) {
	if len(entries) == 0 {
		return types.FileEntry{}, fmt.Errorf("no files found for record")
	}
	if filename == "" {
		return entries[0], nil
	}
	for _, e := range entries {
		if e.Key == filename {
			return e, nil
		}
	}
	return types.FileEntry{}, fmt.Errorf("requested filename not found: %s", filename)
}

// ResolveBucketAndKey finds the storage bucket id and key for a file
// entry, falling back to the record payload when the entry does not carry
// a bucket id.
func ResolveBucketAndKey(entry types.FileEntry, record map[string]any) (string, string, error) {
	bucket := entry.BucketID
	if bucket == "" && record != nil {
		if files, ok := record["files"].(map[string]any); ok {
			if id, ok := files["bucket_id"].(string); ok {
				bucket = id
			} else if b, ok := files["bucket"].(map[string]any); ok {
				if id, ok := b["id"].(string); ok {
					bucket = id
				}
			}
		}
	}
	if entry.Key == "" || bucket == "" {
		return "", "", fmt.Errorf("could not resolve bucket and key for file %q", entry.Key)
	}
	return bucket, entry.Key, nil
}
