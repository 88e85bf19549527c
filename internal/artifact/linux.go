package artifact

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/platform"
	"github.com/offtimer/offtimer/internal/schedule"
)

// linuxEditor rewrites exactly two lines across the systemd unit pair: the
// service unit's ExecStart= and the timer unit's OnCalendar=. Unit files
// are line-oriented text, so no structural parse is needed; every other
// line passes through byte-identical.
type linuxEditor struct {
	fs   afero.Fs
	prof *platform.Profile
}

func (e *linuxEditor) ApplySchedule(req schedule.Request) error {
	execStart := "ExecStart=" + shellescape.QuoteCommand([]string{
		e.prof.Interpreter,
		e.prof.ScriptPath,
		"-Action",
		string(req.Kind),
	})
	if err := e.replaceLine(e.prof.ServicePath(), "ExecStart=", execStart); err != nil {
		return err
	}

	onCalendar := fmt.Sprintf("OnCalendar=*-*-* %02d:%02d:00", req.At.Hour, req.At.Minute)
	return e.replaceLine(e.prof.TimerPath(), "OnCalendar=", onCalendar)
}

var (
	onCalendarPattern = regexp.MustCompile(`^OnCalendar=\*-\*-\* (\d{2}):(\d{2}):00$`)
	execActionPattern = regexp.MustCompile(`-Action\s+(\S+)\s*$`)
)

func (e *linuxEditor) Schedule() (schedule.Clock, schedule.Kind, error) {
	timerLine, err := e.findLine(e.prof.TimerPath(), "OnCalendar=")
	if err != nil {
		return schedule.Clock{}, "", err
	}
	m := onCalendarPattern.FindStringSubmatch(timerLine)
	if m == nil {
		return schedule.Clock{}, "", &StructureError{Path: e.prof.TimerPath(), Detail: "unrecognized OnCalendar expression: " + timerLine}
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	serviceLine, err := e.findLine(e.prof.ServicePath(), "ExecStart=")
	if err != nil {
		return schedule.Clock{}, "", err
	}
	km := execActionPattern.FindStringSubmatch(serviceLine)
	if km == nil {
		return schedule.Clock{}, "", &StructureError{Path: e.prof.ServicePath(), Detail: "no -Action token in ExecStart"}
	}
	kind, err := schedule.ParseKind(km[1])
	if err != nil {
		return schedule.Clock{}, "", &StructureError{Path: e.prof.ServicePath(), Detail: "unknown -Action value " + km[1]}
	}

	return schedule.Clock{Hour: hour, Minute: minute}, kind, nil
}

// replaceLine swaps the single line starting with prefix for replacement,
// leaving every other line untouched.
func (e *linuxEditor) replaceLine(path, prefix, replacement string) error {
	raw, err := readArtifact(e.fs, path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(raw), "\n")
	found := false
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = replacement
			found = true
			break
		}
	}
	if !found {
		return &StructureError{Path: path, Detail: "no " + prefix + " line"}
	}
	return writeArtifact(e.fs, path, []byte(strings.Join(lines, "\n")))
}

func (e *linuxEditor) findLine(path, prefix string) (string, error) {
	raw, err := readArtifact(e.fs, path)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(line, prefix) {
			return line, nil
		}
	}
	return "", &StructureError{Path: path, Detail: "no " + prefix + " line"}
}
