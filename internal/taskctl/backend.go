package taskctl

import (
	"github.com/offtimer/offtimer/internal/platform"
)

// Backend is one native scheduler integration. Register assumes the
// configuration artifact is already in place and up to date; Unregister
// assumes nothing at all.
type Backend interface {
	// Register makes the artifact known to and active in the scheduler.
	Register() error

	// Unregister deactivates and removes the registration.
	Unregister() error

	// Absent reports whether err is a "target was not there"-class
	// failure, which unregistration treats as success.
	Absent(err error) bool

	// PostRemove runs after the artifact files themselves are deleted.
	// Only systemd needs another daemon-reload here.
	PostRemove() error

	// Registered probes the scheduler for an active registration.
	Registered() bool
}

// NewBackend selects the integration for the profile's platform family.
func NewBackend(r Runner, prof *platform.Profile) Backend {
	switch prof.Family {
	case platform.Windows:
		return &schtasksBackend{run: r, prof: prof}
	case platform.MacOS:
		return &launchdBackend{run: r, prof: prof}
	default:
		return &systemdBackend{run: r, prof: prof}
	}
}

// schtasksBackend drives the Windows Task Scheduler through schtasks.exe.
type schtasksBackend struct {
	run  Runner
	prof *platform.Profile
}

func (b *schtasksBackend) Register() error {
	return run(b.run, "schtasks", "/Create", "/TN", b.prof.TaskName, "/XML", b.prof.ArtifactPath, "/F")
}

func (b *schtasksBackend) Unregister() error {
	return run(b.run, "schtasks", "/Delete", "/TN", b.prof.TaskName, "/F")
}

func (b *schtasksBackend) Absent(err error) bool {
	return outputContains(err, "cannot find", "does not exist")
}

func (b *schtasksBackend) PostRemove() error { return nil }

func (b *schtasksBackend) Registered() bool {
	return run(b.run, "schtasks", "/Query", "/TN", b.prof.TaskName) == nil
}

// launchdBackend drives launchd through launchctl. The plist is already at
// its LaunchDaemons path when Register runs.
type launchdBackend struct {
	run  Runner
	prof *platform.Profile
}

func (b *launchdBackend) Register() error {
	return run(b.run, "launchctl", "load", "-w", b.prof.ArtifactPath)
}

func (b *launchdBackend) Unregister() error {
	return run(b.run, "launchctl", "unload", b.prof.ArtifactPath)
}

func (b *launchdBackend) Absent(err error) bool {
	return outputContains(err, "could not find", "no such file", "not loaded")
}

func (b *launchdBackend) PostRemove() error { return nil }

func (b *launchdBackend) Registered() bool {
	return run(b.run, "launchctl", "list", b.prof.TaskName) == nil
}

// systemdBackend drives systemd through systemctl. Registration order is
// daemon-reload, enable, start; unregistration is stop, disable.
type systemdBackend struct {
	run  Runner
	prof *platform.Profile
}

func (b *systemdBackend) Register() error {
	if err := run(b.run, "systemctl", "daemon-reload"); err != nil {
		return err
	}
	if err := run(b.run, "systemctl", "enable", b.prof.TimerUnit); err != nil {
		return err
	}
	return run(b.run, "systemctl", "start", b.prof.TimerUnit)
}

func (b *systemdBackend) Unregister() error {
	stopErr := run(b.run, "systemctl", "stop", b.prof.TimerUnit)
	if stopErr != nil && !b.Absent(stopErr) {
		return stopErr
	}
	disableErr := run(b.run, "systemctl", "disable", b.prof.TimerUnit)
	if disableErr != nil {
		return disableErr
	}
	// Both steps ran; surface the tolerated stop failure so the caller can
	// log it as a warning.
	return stopErr
}

func (b *systemdBackend) Absent(err error) bool {
	return outputContains(err, "not loaded", "does not exist", "not found", "no such file")
}

// PostRemove reloads the unit daemon once more after the unit files are
// gone, so systemd forgets the removed units.
func (b *systemdBackend) PostRemove() error {
	return run(b.run, "systemctl", "daemon-reload")
}

func (b *systemdBackend) Registered() bool {
	return run(b.run, "systemctl", "is-enabled", b.prof.TimerUnit) == nil
}
