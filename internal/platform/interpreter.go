package platform

import "os/exec"

// wellKnownInterpreters is checked in order before falling back to a PATH
// lookup. PowerShell installs to one of these on nearly every macOS and
// Linux system.
var wellKnownInterpreters = []string{
	"/usr/local/bin/pwsh",
	"/usr/bin/pwsh",
	"/opt/microsoft/powershell/7/pwsh",
}

// Seams for tests.
var (
	statFile = defaultStat
	lookPath = exec.LookPath
)

// ResolveInterpreter locates the PowerShell binary the installed schedule
// will invoke. When neither the well-known locations nor PATH yield a hit,
// the bare binary name is returned and resolution is deferred to the
// scheduler's own PATH at trigger time.
func ResolveInterpreter() string {
	for _, candidate := range wellKnownInterpreters {
		if statFile(candidate) {
			return candidate
		}
	}
	if found, err := lookPath("pwsh"); err == nil {
		return found
	}
	return "pwsh"
}

func defaultStat(path string) bool {
	_, err := exec.LookPath(path)
	return err == nil
}
