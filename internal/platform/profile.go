package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Component is the fixed logical name everything is registered under: the
// Windows task name, the launchd label and the systemd unit-name stem.
const Component = "offtimer"

// ErrInvalidComponentName indicates a configuration-integrity problem, not
// user input: the logical component name does not fit the identifier
// grammar shared by all three schedulers.
var ErrInvalidComponentName = errors.New("invalid component name")

var componentPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// lookupEnv is a seam for tests; production code reads the real environment.
var lookupEnv = os.Getenv

// Profile is the immutable per-run install layout. It is computed once from
// the detected family and never mutated afterwards.
type Profile struct {
	Family    Family
	Component string

	// ScriptPath is where the trigger script gets installed.
	ScriptPath string

	// ArtifactPath is the scheduling descriptor on Windows (task XML) and
	// macOS (daemon plist). Unused on Linux.
	ArtifactPath string

	// UnitDir holds the systemd unit-file pair on Linux. Unused elsewhere.
	UnitDir string

	// TaskName is the Windows task name or the launchd label.
	TaskName string

	// ServiceUnit and TimerUnit are the systemd unit names on Linux.
	ServiceUnit string
	TimerUnit   string

	// Interpreter is the resolved PowerShell binary used in the systemd
	// ExecStart line. Empty on Windows, where the task XML names the
	// interpreter itself.
	Interpreter string
}

// NewProfile computes the install layout for the given family.
func NewProfile(f Family) (*Profile, error) {
	return newProfile(f, Component)
}

func newProfile(f Family, component string) (*Profile, error) {
	if !componentPattern.MatchString(component) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidComponentName, component)
	}
	p := &Profile{Family: f, Component: component}
	switch f {
	case Windows:
		base := filepath.Join(programData(), component)
		p.ScriptPath = filepath.Join(base, "trigger.ps1")
		p.ArtifactPath = filepath.Join(base, component+".xml")
		p.TaskName = component
	case MacOS:
		p.ScriptPath = "/usr/local/bin/" + component + ".ps1"
		p.ArtifactPath = "/Library/LaunchDaemons/" + component + ".plist"
		p.TaskName = component
		p.Interpreter = ResolveInterpreter()
	case Linux:
		p.ScriptPath = "/usr/local/bin/" + component + ".ps1"
		p.UnitDir = "/etc/systemd/system"
		p.ServiceUnit = component + ".service"
		p.TimerUnit = component + ".timer"
		p.Interpreter = ResolveInterpreter()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	return p, nil
}

// ServicePath returns the absolute path of the systemd service unit.
func (p *Profile) ServicePath() string {
	return filepath.Join(p.UnitDir, p.ServiceUnit)
}

// TimerPath returns the absolute path of the systemd timer unit.
func (p *Profile) TimerPath() string {
	return filepath.Join(p.UnitDir, p.TimerUnit)
}

// ArtifactPaths lists every scheduling descriptor owned by this install.
func (p *Profile) ArtifactPaths() []string {
	if p.Family == Linux {
		return []string{p.ServicePath(), p.TimerPath()}
	}
	return []string{p.ArtifactPath}
}

func programData() string {
	if dir := lookupEnv("ProgramData"); dir != "" {
		return dir
	}
	return `C:\ProgramData`
}
