package artifact

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/platform"
	"github.com/offtimer/offtimer/internal/schedule"
)

func windowsProfile() *platform.Profile {
	return &platform.Profile{
		Family:       platform.Windows,
		Component:    "offtimer",
		ScriptPath:   `C:\ProgramData\offtimer\trigger.ps1`,
		ArtifactPath: "/ProgramData/offtimer/offtimer.xml",
		TaskName:     "offtimer",
	}
}

func TestWindowsApplySchedule(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	ed := NewEditor(fs, prof)

	req := schedule.Request{
		Action: schedule.ActionInstall,
		Kind:   schedule.KindShutdown,
		At:     schedule.Clock{Hour: 22, Minute: 0},
	}
	if err := ed.ApplySchedule(req); err != nil {
		t.Fatalf("ApplySchedule: %v", err)
	}

	out := readAll(t, fs, prof.ArtifactPath)
	if !strings.Contains(out, "<StartBoundary>2020-01-01T22:00:00</StartBoundary>") {
		t.Fatalf("StartBoundary not updated:\n%s", out)
	}
	if !strings.Contains(out, "-Action shutdown") {
		t.Fatalf("-Action token not updated:\n%s", out)
	}
	if strings.Count(out, "-Action") != 1 {
		t.Fatalf("expected exactly one -Action token:\n%s", out)
	}
	// Unrelated argument tokens survive the regex substitution.
	if !strings.Contains(out, "-NoProfile -ExecutionPolicy Bypass -File") {
		t.Fatalf("unrelated argument tokens disturbed:\n%s", out)
	}
}

func TestWindowsApplySchedule_PreservesUnrelatedLines(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	before := readAll(t, fs, prof.ArtifactPath)

	ed := NewEditor(fs, prof)
	req := schedule.Request{Kind: schedule.KindRestart, At: schedule.Clock{Hour: 5, Minute: 45}}
	if err := ed.ApplySchedule(req); err != nil {
		t.Fatalf("ApplySchedule: %v", err)
	}
	after := readAll(t, fs, prof.ArtifactPath)

	beforeLines := strings.Split(before, "\n")
	afterLines := strings.Split(after, "\n")
	if len(beforeLines) != len(afterLines) {
		t.Fatalf("line count changed: %d -> %d", len(beforeLines), len(afterLines))
	}
	for i := range beforeLines {
		if strings.Contains(beforeLines[i], "StartBoundary") || strings.Contains(beforeLines[i], "-Action") {
			continue
		}
		if beforeLines[i] != afterLines[i] {
			t.Fatalf("unrelated line %d changed: %q -> %q", i, beforeLines[i], afterLines[i])
		}
	}
}

func TestWindowsApplySchedule_Idempotent(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	ed := NewEditor(fs, prof)

	req := schedule.Request{Kind: schedule.KindRestart, At: schedule.Clock{Hour: 7, Minute: 10}}
	if err := ed.ApplySchedule(req); err != nil {
		t.Fatalf("first ApplySchedule: %v", err)
	}
	first := readAll(t, fs, prof.ArtifactPath)
	if err := ed.ApplySchedule(req); err != nil {
		t.Fatalf("second ApplySchedule: %v", err)
	}
	if second := readAll(t, fs, prof.ArtifactPath); second != first {
		t.Fatal("applying the same schedule twice must be a fixed point")
	}
}

func TestWindowsSchedule_ReadBack(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	ed := NewEditor(fs, prof)

	req := schedule.Request{Kind: schedule.KindShutdown, At: schedule.Clock{Hour: 22, Minute: 0}}
	if err := ed.ApplySchedule(req); err != nil {
		t.Fatalf("ApplySchedule: %v", err)
	}

	at, kind, err := ed.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if at.String() != "22:00" || kind != schedule.KindShutdown {
		t.Fatalf("read back %s %s", at, kind)
	}
}

func TestWindowsApplySchedule_ScriptPathFollowsProfile(t *testing.T) {
	// A relocated %ProgramData% moves the script install path; the task's
	// -File token must point at the same place.
	prof := windowsProfile()
	prof.ScriptPath = `D:\Data\offtimer\trigger.ps1`
	fs := materialized(t, prof)
	ed := NewEditor(fs, prof)

	req := schedule.Request{Kind: schedule.KindShutdown, At: schedule.Clock{Hour: 22, Minute: 0}}
	if err := ed.ApplySchedule(req); err != nil {
		t.Fatalf("ApplySchedule: %v", err)
	}

	out := readAll(t, fs, prof.ArtifactPath)
	if !strings.Contains(out, `-File "D:\Data\offtimer\trigger.ps1"`) {
		t.Fatalf("-File token not rewritten:\n%s", out)
	}
	if strings.Contains(out, `C:\ProgramData\offtimer\trigger.ps1`) {
		t.Fatalf("template script path left behind:\n%s", out)
	}
}

func TestWindowsApplySchedule_MissingFileToken(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	stripped := strings.ReplaceAll(
		readAll(t, fs, prof.ArtifactPath),
		`-File "C:\ProgramData\offtimer\trigger.ps1"`, "",
	)
	if err := afero.WriteFile(fs, prof.ArtifactPath, []byte(stripped), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ed := NewEditor(fs, prof)
	err := ed.ApplySchedule(schedule.Request{Kind: schedule.KindShutdown})
	var structural *StructureError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestWindowsApplySchedule_MissingStartBoundary(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	stripped := strings.ReplaceAll(
		readAll(t, fs, prof.ArtifactPath),
		"<StartBoundary>2020-01-01T00:00:00</StartBoundary>", "",
	)
	if err := afero.WriteFile(fs, prof.ArtifactPath, []byte(stripped), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ed := NewEditor(fs, prof)
	err := ed.ApplySchedule(schedule.Request{Kind: schedule.KindShutdown})
	var structural *StructureError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestWindowsApplySchedule_MissingActionToken(t *testing.T) {
	prof := windowsProfile()
	fs := materialized(t, prof)
	stripped := strings.ReplaceAll(readAll(t, fs, prof.ArtifactPath), "-Action shutdown", "")
	if err := afero.WriteFile(fs, prof.ArtifactPath, []byte(stripped), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ed := NewEditor(fs, prof)
	err := ed.ApplySchedule(schedule.Request{Kind: schedule.KindShutdown})
	var structural *StructureError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestWindowsApplySchedule_MissingFileIsIOError(t *testing.T) {
	prof := windowsProfile()
	ed := NewEditor(afero.NewMemMapFs(), prof)
	err := ed.ApplySchedule(schedule.Request{Kind: schedule.KindShutdown})
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
}
