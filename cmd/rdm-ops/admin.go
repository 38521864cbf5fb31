// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turath/rdm-ops/internal/invenio"
	"github.com/turath/rdm-ops/internal/secrets"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Provision platform admin users",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an active admin user with superuser access",
	Long: `Create provisions an admin user via the platform CLI: user creation,
the admin role, and the superuser and administration access grants.
Existing users and roles are left alone, so the command is safe to
re-run.`,
	RunE: runAdminCreate,
}

func init() {
	adminCreateCmd.Flags().String("email", "admin@turath.com", "admin user email")
	adminCreateCmd.Flags().String("password", "", "admin password (default: the admin-password secret)")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = secrets.Get(loadedSecrets, secrets.KeyAdminPassword, "RDM_ADMIN_PASSWORD")
	}
	if password == "" {
		return fmt.Errorf("admin password required: pass --password or add an admin-password secret")
	}

	if err := invenio.CreateAdmin(invenio.NewRunner(), email, password, os.Stderr); err != nil {
		return err
	}

	fmt.Printf("admin user %s provisioned\n", email)
	return nil
}
