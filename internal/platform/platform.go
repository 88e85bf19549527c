// Package platform identifies the host OS family and resolves every
// platform-specific install target once, up front. The resulting Profile is
// immutable and handed read-only to the artifact, provisioning and task
// control stages.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Family is the detected host OS family.
type Family string

const (
	Windows Family = "windows"
	MacOS   Family = "darwin"
	Linux   Family = "linux"
)

// ErrUnsupported is returned when the host OS is none of the supported
// families.
var ErrUnsupported = errors.New("unsupported platform")

// goos is a seam for tests; production code always sees runtime.GOOS.
var goos = runtime.GOOS

// Detect returns the host OS family. It inspects the build target only and
// has no side effects.
func Detect() (Family, error) {
	switch goos {
	case "windows":
		return Windows, nil
	case "darwin":
		return MacOS, nil
	case "linux":
		return Linux, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}
