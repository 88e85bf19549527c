package artifact

import (
	"embed"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/platform"
)

// Templates are hand-authored descriptors shipped inside the binary. An
// install materializes a pristine copy at the platform's artifact path and
// then patches the schedule into it in place.
//
//go:embed templates
var templatesFS embed.FS

// Materialize writes the pristine template(s) for the profile's platform to
// their artifact paths, overwriting any previous copy. On Windows the
// enclosing directory is created first; the macOS and Linux target
// directories are system-owned and expected to exist.
func Materialize(fsys afero.Fs, prof *platform.Profile) error {
	if prof.Family == platform.Windows {
		dir := filepath.Dir(prof.ArtifactPath)
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return &IOError{Path: dir, Err: err}
		}
	}
	for name, path := range templateTargets(prof) {
		raw, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			return &IOError{Path: name, Err: err}
		}
		if err := writeArtifact(fsys, path, raw); err != nil {
			return err
		}
	}
	return nil
}

func templateTargets(prof *platform.Profile) map[string]string {
	switch prof.Family {
	case platform.Windows:
		return map[string]string{"windows.xml": prof.ArtifactPath}
	case platform.MacOS:
		return map[string]string{"darwin.plist": prof.ArtifactPath}
	default:
		return map[string]string{
			"linux.service": prof.ServicePath(),
			"linux.timer":   prof.TimerPath(),
		}
	}
}
