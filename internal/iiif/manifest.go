// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package iiif augments IIIF Presentation v2 manifests with Search API
// service descriptors and validates the result.
//
// Manifests are handled as decoded JSON documents (map[string]any); only
// the "@id", "@context" and "service" members are interpreted, everything
// else passes through untouched.
package iiif

import "strings"

// Context and profile IRIs fixed by the IIIF Presentation and Search API
// specifications. These must match the published documents byte-for-byte.
const (
	PresentationContext = "http://iiif.io/api/presentation/2/context.json"
	SearchContext       = "http://iiif.io/api/search/0/context.json"
	SearchProfile       = "http://iiif.io/api/search/0/search"
	AutocompleteProfile = "http://iiif.io/api/search/0/autocomplete"
)

// DefaultSearchServiceBaseURL is used when no base URL is configured.
const DefaultSearchServiceBaseURL = "https://127.0.0.1:5001"

// recordMarker separates the record identifier within a manifest IRI,
// e.g. https://127.0.0.1:5000/api/iiif/record:abc123/manifest.
const recordMarker = "/record:"

// Config holds the search-injection options.
type Config struct {
	// SearchEnabled gates injection entirely.
	SearchEnabled bool

	// SearchServiceBaseURL is the base IRI for the derived search and
	// autocomplete endpoints; DefaultSearchServiceBaseURL when empty.
	SearchServiceBaseURL string
}

// RecordID extracts the record identifier from a manifest IRI: the text
// after the "/record:" marker, truncated at the next "/". Identifiers
// containing "/" are truncated there; compound identifiers are not
// supported. The second return is false when the marker is absent.
func RecordID(manifestID string) (string, bool) {
	idx := strings.Index(manifestID, recordMarker)
	if idx < 0 {
		return "", false
	}
	id := manifestID[idx+len(recordMarker):]
	if slash := strings.IndexByte(id, '/'); slash >= 0 {
		id = id[:slash]
	}
	if id == "" {
		return "", false
	}
	return id, true
}

// contextList normalizes an @context value to a list. A bare string
// becomes a one-element list; unrecognized shapes yield nil.
func contextList(v any) []any {
	switch c := v.(type) {
	case string:
		return []any{c}
	case []any:
		return c
	case []string:
		out := make([]any, len(c))
		for i, s := range c {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

// containsContext reports whether the normalized context list carries the
// given context IRI.
func containsContext(contexts []any, iri string) bool {
	for _, c := range contexts {
		if s, ok := c.(string); ok && s == iri {
			return true
		}
	}
	return false
}
