// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package iiif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifestID = "https://127.0.0.1:5000/api/iiif/record:test-record-123/manifest"

func testManifest() map[string]any {
	return map[string]any{
		"@context": PresentationContext,
		"@type":    "sc:Manifest",
		"@id":      testManifestID,
		"label":    "Test Document with Search",
		"sequences": []any{
			map[string]any{"@type": "sc:Sequence", "canvases": []any{}},
		},
	}
}

func enabledConfig() Config {
	return Config{
		SearchEnabled:        true,
		SearchServiceBaseURL: "https://127.0.0.1:5001",
	}
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
		ok   bool
	}{
		{"standard manifest IRI", testManifestID, "test-record-123", true},
		{"no marker", "https://host/api/iiif/manifest", "", false},
		{"marker at end", "https://host/api/iiif/record:abc123", "abc123", true},
		{"empty id after marker", "https://host/api/iiif/record:/manifest", "", false},
		{"truncates at next slash", "https://host/record:a-b/c/manifest", "a-b", true},
		{"empty string", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecordID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInjectDisabledGate(t *testing.T) {
	m := testManifest()
	got := InjectSearchServices(m, Config{SearchEnabled: false})

	assert.Equal(t, testManifest(), got)
	assert.NotContains(t, got, "service")
}

func TestInjectMissingMarkerPassThrough(t *testing.T) {
	m := testManifest()
	m["@id"] = "https://host/api/iiif/manifest"

	got := InjectSearchServices(m, enabledConfig())

	assert.Equal(t, PresentationContext, got["@context"])
	assert.NotContains(t, got, "service")
}

func TestInjectEndToEnd(t *testing.T) {
	got := InjectSearchServices(testManifest(), enabledConfig())

	assert.Equal(t, []any{PresentationContext, SearchContext}, got["@context"])

	want := []any{
		map[string]any{
			"@id":     "https://127.0.0.1:5001/search/test-record-123",
			"profile": SearchProfile,
			"label":   "Search within this manifest",
			"service": map[string]any{
				"@id":     "https://127.0.0.1:5001/autocomplete/test-record-123",
				"profile": AutocompleteProfile,
				"label":   "Autocomplete words in this manifest",
			},
		},
	}
	assert.Equal(t, want, got["service"])

	// Unrelated members pass through untouched.
	assert.Equal(t, "Test Document with Search", got["label"])
	assert.Equal(t, "sc:Manifest", got["@type"])
}

func TestInjectIdempotent(t *testing.T) {
	once := InjectSearchServices(testManifest(), enabledConfig())
	twice := InjectSearchServices(once, enabledConfig())

	assert.Equal(t, []any{PresentationContext, SearchContext}, twice["@context"])
	assert.Equal(t, once["service"], twice["service"])
}

func TestInjectContextAlreadyExtended(t *testing.T) {
	m := testManifest()
	m["@context"] = []any{PresentationContext, SearchContext}

	got := InjectSearchServices(m, enabledConfig())
	assert.Equal(t, []any{PresentationContext, SearchContext}, got["@context"])
}

func TestInjectDefaultBaseURL(t *testing.T) {
	got := InjectSearchServices(testManifest(), Config{SearchEnabled: true})

	services, ok := got["service"].([]any)
	require.True(t, ok)
	require.Len(t, services, 1)

	search := services[0].(map[string]any)
	assert.Equal(t, DefaultSearchServiceBaseURL+"/search/test-record-123", search["@id"])
}

func TestInjectReplacesExistingServices(t *testing.T) {
	m := testManifest()
	m["service"] = []any{
		map[string]any{"@id": "https://host/auth", "profile": "http://iiif.io/api/auth/1/login"},
	}

	got := InjectSearchServices(m, enabledConfig())

	services, ok := got["service"].([]any)
	require.True(t, ok)
	require.Len(t, services, 1)
	assert.Equal(t, SearchProfile, services[0].(map[string]any)["profile"])
}

func TestInjectNoContext(t *testing.T) {
	m := testManifest()
	delete(m, "@context")

	got := InjectSearchServices(m, enabledConfig())
	assert.Equal(t, []any{SearchContext}, got["@context"])
}
