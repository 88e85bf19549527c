//go:build windows

package cmd

import "golang.org/x/sys/windows"

// isElevated checks if the current process has administrator privileges.
// It uses the Windows API to check if the process token is elevated.
func isElevated() bool {
	var sid *windows.SID

	// SID for the BUILTIN\Administrators group.
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	token := windows.Token(0)
	isMember, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return isMember || token.IsElevated()
}
