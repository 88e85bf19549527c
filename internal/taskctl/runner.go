// Package taskctl drives the native scheduling subsystem — Windows Task
// Scheduler, launchd or systemd — through idempotent install, reinstall and
// uninstall transitions. Every external command is a blocking call whose
// exit status is checked and classified immediately.
package taskctl

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrRegistration wraps every fatal native-scheduler failure.
var ErrRegistration = errors.New("scheduler registration failed")

// Runner executes a native scheduler command and returns its combined
// output. Tests substitute a recording fake.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// NewExecRunner returns the production Runner backed by os/exec.
func NewExecRunner() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// CommandError carries the failed command line and its output so failures
// can be classified without re-running anything.
type CommandError struct {
	Name   string
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	detail := strings.TrimSpace(e.Output)
	if detail == "" {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %s", e.Name, strings.Join(e.Args, " "), detail)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// run invokes a command and wraps any failure into a CommandError.
func run(r Runner, name string, args ...string) error {
	out, err := r.Run(name, args...)
	if err != nil {
		return &CommandError{Name: name, Args: args, Output: string(out), Err: err}
	}
	return nil
}

// outputContains reports whether err is a CommandError whose output matches
// any of the given lowercase substrings.
func outputContains(err error, substrings ...string) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	haystack := strings.ToLower(cmdErr.Output)
	for _, s := range substrings {
		if strings.Contains(haystack, s) {
			return true
		}
	}
	return false
}
