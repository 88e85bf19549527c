// Package artifact performs in-place, structure-aware edits of the
// platform-native scheduling descriptors: the Windows task-definition XML,
// the macOS launchd property list and the systemd unit-file pair. Each
// editor loads the on-disk document, patches only the schedule-bearing
// fields and writes the same document back, so hand-tuned template content
// the tool does not model survives untouched.
package artifact

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/platform"
	"github.com/offtimer/offtimer/internal/schedule"
)

// Editor patches a platform's scheduling descriptor and reads the embedded
// schedule back out of it.
type Editor interface {
	// ApplySchedule embeds the requested action kind and time of day into
	// the descriptor, leaving all unrelated content byte-identical.
	ApplySchedule(req schedule.Request) error

	// Schedule reads the currently embedded time of day and action kind.
	Schedule() (schedule.Clock, schedule.Kind, error)
}

// NewEditor selects the editor variant for the profile's platform family.
func NewEditor(fsys afero.Fs, prof *platform.Profile) Editor {
	switch prof.Family {
	case platform.Windows:
		return &windowsEditor{fs: fsys, path: prof.ArtifactPath, scriptPath: prof.ScriptPath}
	case platform.MacOS:
		return &darwinEditor{fs: fsys, path: prof.ArtifactPath}
	default:
		return &linuxEditor{fs: fsys, prof: prof}
	}
}

const artifactMode fs.FileMode = 0644

func readArtifact(fsys afero.Fs, path string) ([]byte, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return raw, nil
}

func writeArtifact(fsys afero.Fs, path string, data []byte) error {
	if err := afero.WriteFile(fsys, path, data, artifactMode); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
