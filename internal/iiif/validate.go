// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package iiif

// ValidationResult collects structural defects found in an augmented
// manifest. Errors make the manifest invalid; warnings do not.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationResult) errorf(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// ValidateSearchManifest checks that a manifest carries a conformant
// Search API service block: both required @context entries, a service
// entry with the search profile and its required fields, and a correctly
// profiled nested autocomplete service.
//
// All context and field defects are accumulated so one call reports every
// problem. A missing service block or missing search entry short-circuits
// the remaining checks, which are meaningless without one. The function
// never fails; the caller decides how to react to an invalid result.
func ValidateSearchManifest(manifest map[string]any) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}

	contexts := contextList(manifest["@context"])
	for _, required := range []string{PresentationContext, SearchContext} {
		if !containsContext(contexts, required) {
			result.errorf("missing required @context: " + required)
		}
	}

	services, _ := manifest["service"].([]any)
	if len(services) == 0 {
		result.errorf("no service block found in manifest")
		return result
	}

	var search map[string]any
	for _, s := range services {
		entry, ok := s.(map[string]any)
		if !ok {
			continue
		}
		if profile, _ := entry["profile"].(string); profile == SearchProfile {
			search = entry
			break
		}
	}
	if search == nil {
		result.errorf("no IIIF Search service found")
		return result
	}

	for _, field := range []string{"@id", "profile", "label"} {
		if _, ok := search[field]; !ok {
			result.errorf("search service missing required field: " + field)
		}
	}

	// Autocomplete is optional; its absence is only advisory.
	nested, ok := search["service"].(map[string]any)
	if !ok {
		result.Warnings = append(result.Warnings, "no nested autocomplete service found")
		return result
	}
	if profile, _ := nested["profile"].(string); profile != AutocompleteProfile {
		result.errorf("invalid autocomplete service profile")
	}

	return result
}
