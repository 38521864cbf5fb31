// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turath/rdm-ops/internal/invenio"
	"github.com/turath/rdm-ops/internal/storage"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure and inspect the S3/MinIO storage backend",
}

var storageEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the storage-related environment variables",
	RunE:  runStorageEnv,
}

var storageLocationCmd = &cobra.Command{
	Use:   "location",
	Short: "Register a files storage location with the platform",
	RunE:  runStorageLocation,
}

var storageSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the MinIO setup workflow",
	Long: `Setup probes the object store endpoint, ensures the bucket exists,
registers the default "s3" files location with the platform, and checks
the result. Step outcomes are printed as they complete and optionally
saved as a YAML report.`,
	RunE: runStorageSetup,
}

func init() {
	storageEnvCmd.Flags().Bool("json", false, "output as JSON")

	storageLocationCmd.Flags().String("name", "s3", "location name")
	storageLocationCmd.Flags().String("uri", "", "location URI (default s3://<bucket>/)")
	storageLocationCmd.Flags().Bool("default", true, "mark the location as default")

	storageSetupCmd.Flags().String("endpoint", "", "object store endpoint (default from config or AWS_ENDPOINT_URL)")
	storageSetupCmd.Flags().String("bucket", "", "bucket name (default from config or S3_BUCKET_NAME)")
	storageSetupCmd.Flags().Bool("skip-health", false, "skip the endpoint health check")
	storageSetupCmd.Flags().String("report", "", "write the workflow report to this YAML file")

	storageCmd.AddCommand(storageEnvCmd)
	storageCmd.AddCommand(storageLocationCmd)
	storageCmd.AddCommand(storageSetupCmd)
	rootCmd.AddCommand(storageCmd)
}

func runStorageEnv(cmd *cobra.Command, args []string) error {
	vars := storage.StorageEnv()

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(vars)
	}

	for _, v := range vars {
		if v.Set {
			fmt.Printf("%s = %s\n", v.Key, v.Value)
		} else {
			fmt.Printf("%s = (unset)\n", v.Key)
		}
	}
	return nil
}

func runStorageLocation(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	uri, _ := cmd.Flags().GetString("uri")
	isDefault, _ := cmd.Flags().GetBool("default")

	if uri == "" {
		bucket := storageConfig().Bucket
		if bucket == "" {
			return fmt.Errorf("no bucket configured: pass --uri or set storage.bucket / S3_BUCKET_NAME")
		}
		uri = invenio.S3LocationURI(bucket)
	}

	if err := invenio.CreateLocation(invenio.NewRunner(), name, uri, isDefault); err != nil {
		return err
	}
	fmt.Printf("location %s -> %s (default: %v)\n", name, uri, isDefault)
	return nil
}

func runStorageSetup(cmd *cobra.Command, args []string) error {
	cfg := storageConfig()
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		cfg.Endpoint = v
	}
	if v, _ := cmd.Flags().GetString("bucket"); v != "" {
		cfg.Bucket = v
	}
	if cfg.Bucket == "" {
		return fmt.Errorf("no bucket configured: pass --bucket or set storage.bucket / S3_BUCKET_NAME")
	}

	ctx := context.Background()
	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		return err
	}
	runner := invenio.NewRunner()

	skipHealth, _ := cmd.Flags().GetBool("skip-health")
	workflow := &storage.Workflow{
		Storage:    cfg,
		SkipHealth: skipHealth,
		EnsureBucket: func(ctx context.Context, bucket string) (bool, error) {
			return storage.EnsureBucket(ctx, client, bucket)
		},
		RegisterLocation: func(name, uri string, isDefault bool) error {
			return invenio.CreateLocation(runner, name, uri, isDefault)
		},
		VerifyStorage: func(ctx context.Context) error {
			// The bucket must still be there once the location points at it.
			created, err := storage.EnsureBucket(ctx, client, cfg.Bucket)
			if err != nil {
				return err
			}
			if created {
				return fmt.Errorf("bucket %s disappeared during setup", cfg.Bucket)
			}
			return nil
		},
	}

	report := workflow.Run(ctx, os.Stderr)

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := storage.WriteReport(path, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report written to %s\n", path)
	}

	if !report.Succeeded {
		return fmt.Errorf("storage setup failed")
	}
	fmt.Println("storage setup complete")
	return nil
}
