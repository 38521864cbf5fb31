// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package iiif

// InjectSearchServices augments a Presentation v2 manifest with a Search
// API service descriptor carrying a nested autocomplete descriptor. The
// record identifier is derived from the manifest "@id".
//
// The function is total: when injection is disabled, or the "@id" carries
// no record marker, the manifest is returned as-is. It never fails, so
// manifest delivery cannot break because search augmentation could not
// apply.
//
// Any pre-existing "service" value is replaced, not merged. Other
// services (e.g. IIIF Authentication) would be lost; callers that need
// coexisting services must re-attach them.
func InjectSearchServices(manifest map[string]any, cfg Config) map[string]any {
	if !cfg.SearchEnabled {
		return manifest
	}

	manifestID, _ := manifest["@id"].(string)
	recordID, ok := RecordID(manifestID)
	if !ok {
		return manifest
	}

	contexts := contextList(manifest["@context"])
	if !containsContext(contexts, SearchContext) {
		contexts = append(contexts, SearchContext)
	}
	manifest["@context"] = contexts

	base := cfg.SearchServiceBaseURL
	if base == "" {
		base = DefaultSearchServiceBaseURL
	}
	searchURL := base + "/search/" + recordID
	autocompleteURL := base + "/autocomplete/" + recordID

	manifest["service"] = []any{
		map[string]any{
			"@id":     searchURL,
			"profile": SearchProfile,
			"label":   "Search within this manifest",
			"service": map[string]any{
				"@id":     autocompleteURL,
				"profile": AutocompleteProfile,
				"label":   "Autocomplete words in this manifest",
			},
		},
	}

	return manifest
}
