//go:build !windows

package cmd

import "os"

// isElevated reports whether the process runs as root, which systemctl,
// launchctl and the system install paths all require.
func isElevated() bool {
	return os.Geteuid() == 0
}
