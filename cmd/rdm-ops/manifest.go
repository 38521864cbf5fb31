// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/turath/rdm-ops/internal/iiif"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Augment and validate IIIF manifests",
	Long: `Manifest works on IIIF Presentation v2 manifests produced by the
platform. Inject adds Search and Autocomplete service descriptors derived
from the record identifier in the manifest @id; validate checks that an
augmented manifest is structurally conformant.`,
}

var manifestInjectCmd = &cobra.Command{
	Use:   "inject [manifest.json]",
	Short: "Inject search services into a manifest",
	Long: `Inject reads a manifest from the given file (or stdin with "-"),
adds the IIIF Search API context and a search service with a nested
autocomplete service, and writes the augmented manifest to stdout.

Manifests without a record identifier in their @id pass through
unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifestInject,
}

var manifestValidateCmd = &cobra.Command{
	Use:   "validate [manifest.json]",
	Short: "Validate the search services in a manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifestValidate,
}

func init() {
	manifestInjectCmd.Flags().Bool("enabled", true, "enable search injection (disabled passes the manifest through)")
	manifestInjectCmd.Flags().String("search-base-url", "", "search service base URL (default from config, then "+iiif.DefaultSearchServiceBaseURL+")")

	manifestValidateCmd.Flags().Bool("json", false, "output the validation result as JSON")

	manifestCmd.AddCommand(manifestInjectCmd)
	manifestCmd.AddCommand(manifestValidateCmd)
	rootCmd.AddCommand(manifestCmd)
}

// readManifest loads a manifest from a file argument, or stdin when the
// argument is absent or "-".
func readManifest(args []string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return manifest, nil
}

func runManifestInject(cmd *cobra.Command, args []string) error {
	manifest, err := readManifest(args)
	if err != nil {
		return err
	}

	cfg := iiif.Config{
		SearchEnabled:        viper.GetBool("iiif.search_enabled"),
		SearchServiceBaseURL: viper.GetString("iiif.search_service_base_url"),
	}
	if cmd.Flags().Changed("enabled") {
		cfg.SearchEnabled, _ = cmd.Flags().GetBool("enabled")
	} else if !viper.IsSet("iiif.search_enabled") {
		// The command exists to inject; only an explicit config or flag
		// turns it off.
		cfg.SearchEnabled = true
	}
	if v, _ := cmd.Flags().GetString("search-base-url"); v != "" {
		cfg.SearchServiceBaseURL = v
	}

	result := iiif.InjectSearchServices(manifest, cfg)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runManifestValidate(cmd *cobra.Command, args []string) error {
	manifest, err := readManifest(args)
	if err != nil {
		return err
	}

	result := iiif.ValidateSearchManifest(manifest)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if result.Valid {
			fmt.Println("manifest is valid")
		}
	}

	if !result.Valid {
		return fmt.Errorf("manifest failed validation with %d error(s)", len(result.Errors))
	}
	return nil
}
