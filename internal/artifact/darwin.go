package artifact

import (
	"regexp"
	"strconv"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/schedule"
)

// actionMarker precedes the schedule-type entry in ProgramArguments.
const actionMarker = "-Action"

// darwinEditor patches the launchd property list: the ProgramArguments
// entry following the -Action marker and the StartCalendarInterval
// Hour/Minute integers. Interpreter and script-path entries are left alone.
type darwinEditor struct {
	fs   afero.Fs
	path string
}

func (e *darwinEditor) ApplySchedule(req schedule.Request) error {
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	action, err := e.actionElement(root)
	if err != nil {
		return err
	}
	action.SetText(string(req.Kind))

	hour, minute, err := e.calendarElements(root)
	if err != nil {
		return err
	}
	hour.SetText(strconv.Itoa(req.At.Hour))
	minute.SetText(strconv.Itoa(req.At.Minute))

	out, err := doc.WriteToBytes()
	if err != nil {
		return &IOError{Path: e.path, Err: err}
	}
	return writeArtifact(e.fs, e.path, stripEmptyArrays(out))
}

func (e *darwinEditor) Schedule() (schedule.Clock, schedule.Kind, error) {
	_, root, err := e.load()
	if err != nil {
		return schedule.Clock{}, "", err
	}

	action, err := e.actionElement(root)
	if err != nil {
		return schedule.Clock{}, "", err
	}
	kind, err := schedule.ParseKind(action.Text())
	if err != nil {
		return schedule.Clock{}, "", &StructureError{Path: e.path, Detail: "unknown -Action value " + action.Text()}
	}

	hour, minute, err := e.calendarElements(root)
	if err != nil {
		return schedule.Clock{}, "", err
	}
	h, err1 := strconv.Atoi(hour.Text())
	m, err2 := strconv.Atoi(minute.Text())
	if err1 != nil || err2 != nil {
		return schedule.Clock{}, "", &StructureError{Path: e.path, Detail: "non-integer StartCalendarInterval values"}
	}

	return schedule.Clock{Hour: h, Minute: m}, kind, nil
}

func (e *darwinEditor) load() (*etree.Document, *etree.Element, error) {
	raw, err := readArtifact(e.fs, e.path)
	if err != nil {
		return nil, nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, nil, &StructureError{Path: e.path, Detail: "malformed plist: " + err.Error()}
	}
	root := doc.FindElement("/plist/dict")
	if root == nil {
		return nil, nil, &StructureError{Path: e.path, Detail: "no top-level dict"}
	}
	return doc, root, nil
}

// actionElement returns the ProgramArguments string entry immediately after
// the -Action marker.
func (e *darwinEditor) actionElement(root *etree.Element) (*etree.Element, error) {
	array := dictValue(root, "ProgramArguments")
	if array == nil || array.Tag != "array" {
		return nil, &StructureError{Path: e.path, Detail: "no ProgramArguments array"}
	}
	entries := array.SelectElements("string")
	for i, entry := range entries {
		if entry.Text() == actionMarker {
			if i+1 >= len(entries) {
				return nil, &StructureError{Path: e.path, Detail: "no value after -Action marker"}
			}
			return entries[i+1], nil
		}
	}
	return nil, &StructureError{Path: e.path, Detail: "no -Action marker in ProgramArguments"}
}

func (e *darwinEditor) calendarElements(root *etree.Element) (hour, minute *etree.Element, err error) {
	cal := dictValue(root, "StartCalendarInterval")
	if cal == nil || cal.Tag != "dict" {
		return nil, nil, &StructureError{Path: e.path, Detail: "no StartCalendarInterval dict"}
	}
	hour = dictValue(cal, "Hour")
	minute = dictValue(cal, "Minute")
	if hour == nil || minute == nil {
		return nil, nil, &StructureError{Path: e.path, Detail: "StartCalendarInterval missing Hour or Minute"}
	}
	return hour, minute, nil
}

// dictValue returns the value element that follows the named key inside a
// plist dict, or nil when the key is absent or has no value.
func dictValue(dict *etree.Element, key string) *etree.Element {
	children := dict.ChildElements()
	for i, child := range children {
		if child.Tag == "key" && child.Text() == key {
			if i+1 < len(children) {
				return children[i+1]
			}
			return nil
		}
	}
	return nil
}

// launchd rejects empty arrays, and the serializer collapses an array whose
// entries were all removed into a self-closed element. Strip such lines
// before the plist lands on disk.
var emptyArrayPattern = regexp.MustCompile(`(?m)^[ \t]*(?:<array\s*/>|<array>\s*</array>)[ \t]*\r?\n`)

func stripEmptyArrays(data []byte) []byte {
	return emptyArrayPattern.ReplaceAll(data, nil)
}
