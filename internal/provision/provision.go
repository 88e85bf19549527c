// Package provision installs and removes the trigger script: the small
// PowerShell program the native scheduler ultimately invokes. The script
// ships embedded in the binary and is copied to its platform install path
// with scheduler-executable, non-user-writable permissions.
package provision

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/platform"
)

// ErrProvision wraps every copy or permission failure.
var ErrProvision = errors.New("provisioning failed")

//go:embed trigger.ps1
var triggerScript []byte

// Read+execute for everyone, writable only by the owner. The owner is the
// privileged account on every platform, since installs require elevation.
const scriptMode fs.FileMode = 0755

// euid is a seam for tests. Windows has no POSIX ownership to set, and
// ownership is only worth claiming when the process is actually root.
var euid = os.Geteuid

// Provisioner copies the trigger script into place and tears it (and the
// scheduling artifacts) back out on uninstall.
type Provisioner struct {
	fs   afero.Fs
	prof *platform.Profile
}

// New returns a Provisioner operating on the given filesystem.
func New(fsys afero.Fs, prof *platform.Profile) *Provisioner {
	return &Provisioner{fs: fsys, prof: prof}
}

// InstallScript writes the embedded trigger script to the resolved install
// path. Intermediate directories are created on Windows only; the macOS and
// Linux destinations are system directories expected to exist.
func (p *Provisioner) InstallScript() error {
	if len(triggerScript) == 0 {
		return fmt.Errorf("%w: trigger script missing from build", ErrProvision)
	}
	if p.prof.Family == platform.Windows {
		if err := p.fs.MkdirAll(filepath.Dir(p.prof.ScriptPath), 0755); err != nil {
			return fmt.Errorf("%w: %v", ErrProvision, err)
		}
	}
	if err := afero.WriteFile(p.fs, p.prof.ScriptPath, triggerScript, scriptMode); err != nil {
		return fmt.Errorf("%w: %v", ErrProvision, err)
	}
	if err := p.fs.Chmod(p.prof.ScriptPath, scriptMode); err != nil {
		return fmt.Errorf("%w: %v", ErrProvision, err)
	}
	if p.prof.Family != platform.Windows && euid() == 0 {
		if err := p.fs.Chown(p.prof.ScriptPath, 0, 0); err != nil {
			return fmt.Errorf("%w: %v", ErrProvision, err)
		}
	}
	return nil
}

// RemoveScript deletes the installed trigger script. An already-absent
// script is a successful no-op.
func (p *Provisioner) RemoveScript() error {
	if err := p.fs.Remove(p.prof.ScriptPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrProvision, err)
	}
	return nil
}

// RemoveArtifacts deletes the scheduling descriptors. Already-absent files
// are tolerated; on Windows the now-empty install directory is removed too.
func (p *Provisioner) RemoveArtifacts() error {
	for _, path := range p.prof.ArtifactPaths() {
		if err := p.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrProvision, err)
		}
	}
	if p.prof.Family == platform.Windows {
		// Best effort: fails harmlessly while the directory is non-empty.
		_ = p.fs.Remove(filepath.Dir(p.prof.ArtifactPath))
	}
	return nil
}

// ScriptInstalled reports whether the trigger script is present.
func (p *Provisioner) ScriptInstalled() (bool, error) {
	return afero.Exists(p.fs, p.prof.ScriptPath)
}
