// Package schedule defines the validated user request that drives an
// install, reinstall or uninstall run. Raw CLI input is normalized here;
// everything downstream works with typed values only.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidInput is wrapped by every validation failure so callers can
// distinguish bad user input from internal errors.
var ErrInvalidInput = errors.New("invalid input")

// Action is the top-level operation requested by the user.
type Action string

const (
	ActionInstall   Action = "install"
	ActionReinstall Action = "reinstall"
	ActionUninstall Action = "uninstall"
)

// Kind selects what the trigger script does when the schedule fires.
type Kind string

const (
	KindShutdown Kind = "shutdown"
	KindRestart  Kind = "restart"
)

// Clock is a time of day with minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock back to the canonical HH:mm form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// clockPattern requires the literal HH:mm shape; range checks happen after.
var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ParseAction normalizes and validates an action string.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionInstall, ActionReinstall, ActionUninstall:
		return a, nil
	default:
		return "", fmt.Errorf("%w: action", ErrInvalidInput)
	}
}

// ParseKind normalizes and validates a schedule type string.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindShutdown, KindRestart:
		return k, nil
	default:
		return "", fmt.Errorf("%w: type", ErrInvalidInput)
	}
}

// ParseClock validates an HH:mm string with HH in [00,23] and mm in [00,59].
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, fmt.Errorf("%w: time", ErrInvalidInput)
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return Clock{}, fmt.Errorf("%w: time", ErrInvalidInput)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return Clock{}, fmt.Errorf("%w: time", ErrInvalidInput)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// Request is a fully validated provisioning request. Kind and At carry
// meaning only when Action is install or reinstall.
type Request struct {
	Action Action
	Kind   Kind
	At     Clock
}

// Raw carries unvalidated input as supplied on the command line or in a
// defaults file. Empty fields may be filled interactively.
type Raw struct {
	Action string
	Kind   string
	At     string
}

// Prompter supplies a value for a parameter that was not given up front.
// A nil Prompter turns every missing parameter into a validation error.
type Prompter interface {
	Ask(question string) (string, error)
}

// Build validates raw input into a Request, asking the prompter for any
// missing piece. When the action is uninstall, supplied schedule type and
// time are discarded rather than validated.
func Build(raw Raw, p Prompter) (Request, error) {
	action, err := field(raw.Action, p, "Action (install/reinstall/uninstall)")
	if err != nil {
		return Request{}, err
	}
	a, err := ParseAction(action)
	if err != nil {
		return Request{}, err
	}
	if a == ActionUninstall {
		return Request{Action: a}, nil
	}

	kind, err := field(raw.Kind, p, "Schedule type (shutdown/restart)")
	if err != nil {
		return Request{}, err
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Request{}, err
	}

	at, err := field(raw.At, p, "Time of day (HH:mm)")
	if err != nil {
		return Request{}, err
	}
	c, err := ParseClock(at)
	if err != nil {
		return Request{}, err
	}

	return Request{Action: a, Kind: k, At: c}, nil
}

func field(value string, p Prompter, question string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	if p == nil {
		return "", fmt.Errorf("%w: missing parameter", ErrInvalidInput)
	}
	answer, err := p.Ask(question)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return answer, nil
}
