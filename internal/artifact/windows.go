package artifact

import (
	"fmt"
	"regexp"
	"time"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/schedule"
)

// startBoundaryDate is a fixed placeholder: the daily-recurrence rule only
// consumes the time-of-day component of StartBoundary.
const startBoundaryDate = "2020-01-01"

const startBoundaryLayout = "2006-01-02T15:04:05"

var (
	actionTokenPattern = regexp.MustCompile(`-Action\s+\S+`)
	fileTokenPattern   = regexp.MustCompile(`-File\s+"[^"]*"`)
)

// windowsEditor patches the Task Scheduler XML definition: the
// CalendarTrigger's StartBoundary plus the -Action and -File tokens inside
// the exec action's Arguments. The -File token is rewritten from the
// profile so a relocated %ProgramData% carries through to the task.
type windowsEditor struct {
	fs         afero.Fs
	path       string
	scriptPath string
}

func (e *windowsEditor) ApplySchedule(req schedule.Request) error {
	doc, err := e.load()
	if err != nil {
		return err
	}

	boundary := doc.FindElement("//StartBoundary")
	if boundary == nil {
		return &StructureError{Path: e.path, Detail: "no StartBoundary element"}
	}
	boundary.SetText(fmt.Sprintf("%sT%02d:%02d:00", startBoundaryDate, req.At.Hour, req.At.Minute))

	arguments := doc.FindElement("//Actions/Exec/Arguments")
	if arguments == nil {
		return &StructureError{Path: e.path, Detail: "no Actions/Exec/Arguments element"}
	}
	text := arguments.Text()
	if !actionTokenPattern.MatchString(text) {
		return &StructureError{Path: e.path, Detail: "no -Action token in Arguments"}
	}
	if !fileTokenPattern.MatchString(text) {
		return &StructureError{Path: e.path, Detail: "no -File token in Arguments"}
	}
	text = actionTokenPattern.ReplaceAllString(text, "-Action "+string(req.Kind))
	text = fileTokenPattern.ReplaceAllLiteralString(text, `-File "`+e.scriptPath+`"`)
	arguments.SetText(text)

	out, err := doc.WriteToBytes()
	if err != nil {
		return &IOError{Path: e.path, Err: err}
	}
	return writeArtifact(e.fs, e.path, out)
}

func (e *windowsEditor) Schedule() (schedule.Clock, schedule.Kind, error) {
	doc, err := e.load()
	if err != nil {
		return schedule.Clock{}, "", err
	}

	boundary := doc.FindElement("//StartBoundary")
	if boundary == nil {
		return schedule.Clock{}, "", &StructureError{Path: e.path, Detail: "no StartBoundary element"}
	}
	stamp, err := time.Parse(startBoundaryLayout, boundary.Text())
	if err != nil {
		return schedule.Clock{}, "", &StructureError{Path: e.path, Detail: "malformed StartBoundary: " + boundary.Text()}
	}

	arguments := doc.FindElement("//Actions/Exec/Arguments")
	if arguments == nil {
		return schedule.Clock{}, "", &StructureError{Path: e.path, Detail: "no Actions/Exec/Arguments element"}
	}
	kind, err := kindFromArgs(arguments.Text())
	if err != nil {
		return schedule.Clock{}, "", &StructureError{Path: e.path, Detail: err.Error()}
	}

	return schedule.Clock{Hour: stamp.Hour(), Minute: stamp.Minute()}, kind, nil
}

func (e *windowsEditor) load() (*etree.Document, error) {
	raw, err := readArtifact(e.fs, e.path)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	// Keep quotes in character data literal so the quoted -File path
	// round-trips byte-identical.
	doc.WriteSettings.CanonicalText = true
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, &StructureError{Path: e.path, Detail: "malformed XML: " + err.Error()}
	}
	return doc, nil
}

var actionValuePattern = regexp.MustCompile(`-Action\s+(\S+)`)

func kindFromArgs(text string) (schedule.Kind, error) {
	m := actionValuePattern.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("no -Action token in Arguments")
	}
	kind, err := schedule.ParseKind(m[1])
	if err != nil {
		return "", fmt.Errorf("unknown -Action value %q", m[1])
	}
	return kind, nil
}
