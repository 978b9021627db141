//go:build windows

package osutil

import "fmt"

// DropPrivileges is not supported on Windows, which has no uid/gid model. It returns an error if
// either name is non-empty so callers fail loudly instead of silently running privileged.
func DropPrivileges(userName, groupName string) error {
	if len(userName) > 0 || len(groupName) > 0 {
		return fmt.Errorf("osutil.DropPrivileges: not supported on windows")
	}
	return nil
}

// CredentialReport returns a placeholder string on Windows.
func CredentialReport() string {
	return "uid/gid not applicable on windows"
}
