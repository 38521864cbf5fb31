// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package invenio

import (
	"fmt"
	"io"
)

// adminRole is the role granted superuser and administration access.
const adminRole = "admin"

// CreateAdmin provisions an active, confirmed admin user and grants it
// the platform admin accesses. User and role creation tolerate "already
// exists" failures so the command is safe to re-run; the grant steps are
// not tolerated because a missing grant leaves a half-provisioned admin.
func CreateAdmin(r *Runner, email, password string, progress io.Writer) error {
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	// Idempotent steps: existing user or role is fine.
	if _, err := r.Invenio("users", "create", email, "--password", password, "--active", "--confirm"); err != nil {
		fmt.Fprintf(progress, "user create skipped (may already exist): %v\n", err)
	} else {
		fmt.Fprintf(progress, "created user %s\n", email)
	}

	if _, err := r.Invenio("roles", "create", adminRole); err != nil {
		fmt.Fprintf(progress, "role create skipped (may already exist): %v\n", err)
	} else {
		fmt.Fprintf(progress, "created role %s\n", adminRole)
	}

	if _, err := r.Invenio("roles", "add", email, adminRole); err != nil {
		return fmt.Errorf("adding %s to role %s: %w", email, adminRole, err)
	}

	for _, access := range []string{"superuser-access", "administration-access"} {
		if _, err := r.Invenio("access", "allow", access, "role", adminRole); err != nil {
			return fmt.Errorf("granting %s: %w", access, err)
		}
		fmt.Fprintf(progress, "granted %s to role %s\n", access, adminRole)
	}

	return nil
}
