package provision

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/platform"
)

func stubEuid(t *testing.T, id int) {
	t.Helper()
	old := euid
	euid = func() int { return id }
	t.Cleanup(func() { euid = old })
}

// chownRecorder records ownership changes made through the filesystem.
type chownRecorder struct {
	afero.Fs
	calls []string
	err   error
}

func (c *chownRecorder) Chown(name string, uid, gid int) error {
	c.calls = append(c.calls, name)
	return c.err
}

func linuxProfile() *platform.Profile {
	return &platform.Profile{
		Family:      platform.Linux,
		Component:   "offtimer",
		ScriptPath:  "/usr/local/bin/offtimer.ps1",
		UnitDir:     "/etc/systemd/system",
		ServiceUnit: "offtimer.service",
		TimerUnit:   "offtimer.timer",
	}
}

func windowsProfile() *platform.Profile {
	return &platform.Profile{
		Family:       platform.Windows,
		Component:    "offtimer",
		ScriptPath:   "/ProgramData/offtimer/trigger.ps1",
		ArtifactPath: "/ProgramData/offtimer/offtimer.xml",
		TaskName:     "offtimer",
	}
}

func TestInstallScript_Linux(t *testing.T) {
	stubEuid(t, 0)
	fs := &chownRecorder{Fs: afero.NewMemMapFs()}
	p := New(fs, linuxProfile())

	if err := p.InstallScript(); err != nil {
		t.Fatalf("InstallScript: %v", err)
	}

	raw, err := afero.ReadFile(fs, "/usr/local/bin/offtimer.ps1")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("installed script is empty")
	}
	info, err := fs.Stat("/usr/local/bin/offtimer.ps1")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Fatalf("mode = %v, want 0755", info.Mode().Perm())
	}
	if len(fs.calls) != 1 || fs.calls[0] != "/usr/local/bin/offtimer.ps1" {
		t.Fatalf("unexpected chown calls: %v", fs.calls)
	}
}

func TestInstallScript_WindowsCreatesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New(fs, windowsProfile())

	if err := p.InstallScript(); err != nil {
		t.Fatalf("InstallScript: %v", err)
	}
	if ok, _ := afero.DirExists(fs, "/ProgramData/offtimer"); !ok {
		t.Fatal("install directory was not created")
	}
	if ok, _ := p.ScriptInstalled(); !ok {
		t.Fatal("script not installed")
	}
}

func TestInstallScript_ChownFailure(t *testing.T) {
	stubEuid(t, 0)
	fs := &chownRecorder{
		Fs:  afero.NewMemMapFs(),
		err: errors.New("operation not permitted"),
	}
	p := New(fs, linuxProfile())
	if err := p.InstallScript(); !errors.Is(err, ErrProvision) {
		t.Fatalf("expected ErrProvision, got %v", err)
	}
}

func TestInstallScript_UnprivilegedSkipsChown(t *testing.T) {
	stubEuid(t, 1000)
	fs := &chownRecorder{
		Fs:  afero.NewMemMapFs(),
		err: errors.New("operation not permitted"),
	}
	p := New(fs, linuxProfile())
	if err := p.InstallScript(); err != nil {
		t.Fatalf("InstallScript: %v", err)
	}
	if len(fs.calls) != 0 {
		t.Fatalf("unexpected chown calls: %v", fs.calls)
	}
}

func TestInstallScript_ReadOnlyFs(t *testing.T) {
	stubEuid(t, 0)
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	p := New(fs, linuxProfile())
	if err := p.InstallScript(); !errors.Is(err, ErrProvision) {
		t.Fatalf("expected ErrProvision, got %v", err)
	}
}

func TestRemoveScript_AbsentIsNoOp(t *testing.T) {
	p := New(afero.NewMemMapFs(), linuxProfile())
	if err := p.RemoveScript(); err != nil {
		t.Fatalf("RemoveScript on absent target: %v", err)
	}
}

func TestRemoveArtifacts(t *testing.T) {
	fs := afero.NewMemMapFs()
	prof := linuxProfile()
	for _, path := range prof.ArtifactPaths() {
		if err := afero.WriteFile(fs, path, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	p := New(fs, prof)
	if err := p.RemoveArtifacts(); err != nil {
		t.Fatalf("RemoveArtifacts: %v", err)
	}
	for _, path := range prof.ArtifactPaths() {
		if ok, _ := afero.Exists(fs, path); ok {
			t.Fatalf("artifact %s still present", path)
		}
	}
	// Absent artifacts are fine on a second pass.
	if err := p.RemoveArtifacts(); err != nil {
		t.Fatalf("second RemoveArtifacts: %v", err)
	}
}

func TestInstallThenRemove_RoundTrip(t *testing.T) {
	stubEuid(t, 0)
	fs := afero.NewMemMapFs()
	p := New(fs, linuxProfile())

	if err := p.InstallScript(); err != nil {
		t.Fatalf("InstallScript: %v", err)
	}
	if err := p.RemoveScript(); err != nil {
		t.Fatalf("RemoveScript: %v", err)
	}
	if ok, _ := p.ScriptInstalled(); ok {
		t.Fatal("script should be gone")
	}
}
