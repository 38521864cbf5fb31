// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turath/rdm-ops/internal/invenio"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage personal API tokens",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Mint a personal API token and store it in .env",
	Long: `Create mints a personal API token for a platform user and updates the
RDM_API_TOKEN entry in the .env file, backing up the previous file first.
Pass --env-file "" to print the token without touching any file.`,
	RunE: runTokenCreate,
}

func init() {
	tokenCreateCmd.Flags().String("email", "admin@turath.com", "user the token belongs to")
	tokenCreateCmd.Flags().String("name", "", "token name (default \"API Token <date>\")")
	tokenCreateCmd.Flags().String("env-file", ".env", "env file to update with the new token")

	tokenCmd.AddCommand(tokenCreateCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	envFile, _ := cmd.Flags().GetString("env-file")

	token, err := invenio.CreateToken(invenio.NewRunner(), email, name)
	if err != nil {
		return err
	}

	fmt.Println(token)

	if envFile == "" {
		return nil
	}
	backup, err := invenio.UpdateEnvToken(envFile, token)
	if err != nil {
		return err
	}
	if backup != "" {
		fmt.Fprintf(os.Stderr, "updated %s (previous file saved as %s)\n", envFile, backup)
	} else {
		fmt.Fprintf(os.Stderr, "created %s\n", envFile)
	}
	return nil
}
