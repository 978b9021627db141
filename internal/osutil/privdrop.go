//go:build unix

// Package osutil is a helper package to abstract OS interactions: signal registration and
// dropping process privileges to a nominated user/group.
package osutil

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

const me = "osutil.DropPrivileges: "

// DropPrivileges changes the running process's uid/gid to the nominated user and group, which
// presumably have less power than whatever the process started as. Either parameter may be the
// empty string to skip that half of the transition.
//
// The order of operations matters: symbolic names are resolved to numeric ids first, while
// /etc/passwd and /etc/group are still trivially readable, then supplementary groups are cleared
// and the group id is changed while the process still holds enough privilege to do so, and only
// then is the user id changed — that step should be irreversible.
//
// Unlike some historical Go runtimes, this is safe on Linux: since Go 1.16 the runtime issues
// setuid/setgid via AllThreadsSyscall so the credential change applies to every OS thread, not
// just the calling one.
func DropPrivileges(userName, groupName string) error {
	uid := -1
	gid := -1

	if len(userName) > 0 {
		u, err := user.Lookup(userName)
		if err != nil {
			return fmt.Errorf(me+"lookup user %q: %w", userName, err)
		}
		uid, err = strconv.Atoi(u.Uid)
		if err != nil {
			return fmt.Errorf(me+"convert uid %q: %w", u.Uid, err)
		}
	}

	if len(groupName) > 0 {
		g, err := user.LookupGroup(groupName)
		if err != nil {
			return fmt.Errorf(me+"lookup group %q: %w", groupName, err)
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return fmt.Errorf(me+"convert gid %q: %w", g.Gid, err)
		}
	}

	if gid != -1 {
		if err := unix.Setgroups([]int{}); err != nil {
			return fmt.Errorf(me+"clear supplementary groups: %w", err)
		}
		if err := unix.Setgid(gid); err != nil {
			return fmt.Errorf(me+"setgid %d/%s: %w", gid, groupName, err)
		}
	}

	if uid != -1 {
		if err := unix.Setuid(uid); err != nil {
			return fmt.Errorf(me+"setuid %d/%s: %w", uid, userName, err)
		}
	}

	return nil
}

// CredentialReport returns a printable string showing the uid/gid of the process, normally
// called after DropPrivileges to confirm the downgrade took effect.
func CredentialReport() string {
	return fmt.Sprintf("uid=%d gid=%d", os.Getuid(), os.Getgid())
}
