// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rdm-ops CLI, the operator
// toolkit for a repository platform deployment: admin provisioning, API
// tokens, S3/MinIO storage setup, stored-file verification, and IIIF
// manifest search augmentation.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/turath/rdm-ops/internal/secrets"
	"github.com/turath/rdm-ops/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the rdm-ops CLI.
var rootCmd = &cobra.Command{
	Use:   "rdm-ops",
	Short: "Operator toolkit for a repository platform deployment",
	Long: `rdm-ops bundles the recurring operational tasks around a research data
repository: creating the admin user, minting API tokens, wiring up the
S3/MinIO storage backend, verifying that stored bytes match what the
REST API reports, and augmenting IIIF manifests with search services.

The platform itself owns records, files and authentication; rdm-ops only
drives its CLI and REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env first: the deployment keeps RDM_API_TOKEN and the S3
		// credentials there.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rdm-ops.yaml or ~/.config/rdm-ops/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "platform API base URL (default https://127.0.0.1:5000)")
	rootCmd.PersistentFlags().Bool("insecure", true, "skip TLS verification (local instances use self-signed certificates)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rdm-ops")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rdm-ops"))
		}
	}

	viper.SetEnvPrefix("RDM_OPS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// clientConfig assembles the REST client settings from flags, config file
// and loaded secrets, in that precedence order.
func clientConfig(cmd *cobra.Command) types.ClientConfig {
	cfg := types.ClientConfig{
		BaseURL:    viper.GetString("client.base_url"),
		MaxRetries: viper.GetInt("client.max_retries"),
		Token:      secrets.Get(loadedSecrets, secrets.KeyAPIToken, "RDM_API_TOKEN"),
	}
	cfg.UserAgent = "rdm-ops/" + version
	cfg.Timeout = viper.GetDuration("client.timeout")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	cfg.InsecureSkipVerify, _ = cmd.Flags().GetBool("insecure")

	return cfg
}

// storageConfig assembles the object store settings from config file,
// environment and loaded secrets.
func storageConfig() types.StorageConfig {
	cfg := types.StorageConfig{
		Endpoint:        viper.GetString("storage.endpoint"),
		Region:          viper.GetString("storage.region"),
		Bucket:          viper.GetString("storage.bucket"),
		AccessKeyID:     secrets.Get(loadedSecrets, secrets.KeyS3AccessKeyID, "AWS_ACCESS_KEY_ID"),
		SecretAccessKey: secrets.Get(loadedSecrets, secrets.KeyS3SecretAccess, "AWS_SECRET_ACCESS_KEY"),
		ForcePathStyle:  true,
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = os.Getenv("AWS_ENDPOINT_URL")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://127.0.0.1:9000"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = os.Getenv("S3_BUCKET_NAME")
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
