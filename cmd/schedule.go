package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/offtimer/offtimer/internal/installer"
	"github.com/offtimer/offtimer/internal/journal"
	"github.com/offtimer/offtimer/internal/platform"
	"github.com/offtimer/offtimer/internal/schedule"
	"github.com/offtimer/offtimer/internal/taskctl"
)

// ErrRequiresElevation is returned when install, reinstall or uninstall run
// without the privileges the native scheduler demands.
var ErrRequiresElevation = errors.New("this operation requires administrator privileges")

// Seams for tests: the real privilege probe and the stdin prompter.
var (
	isElevatedFunc  = isElevated
	newPrompterFunc = newPrompter
)

func install(ctx *cli.Context) error {
	return runAction(ctx, schedule.ActionInstall)
}

func reinstall(ctx *cli.Context) error {
	return runAction(ctx, schedule.ActionReinstall)
}

func uninstall(ctx *cli.Context) error {
	return runAction(ctx, schedule.ActionUninstall)
}

// interactive backs a bare invocation: the action itself has not been
// chosen yet, so it is asked for along with any missing schedule fields.
func interactive(ctx *cli.Context) error {
	return runRaw(ctx, "")
}

func runAction(ctx *cli.Context, action schedule.Action) error {
	return runRaw(ctx, string(action))
}

func runRaw(ctx *cli.Context, action string) error {
	raw := schedule.Raw{
		Action: action,
		Kind:   scheduleType,
		At:     scheduleTime,
	}
	if err := applyDefaults(&raw); err != nil {
		return err
	}
	req, err := schedule.Build(raw, newPrompterFunc())
	if err != nil {
		return err
	}
	if !isElevatedFunc() {
		return ErrRequiresElevation
	}

	o, jrnl, err := newOrchestrator()
	if err != nil {
		return err
	}
	if jrnl != nil {
		defer jrnl.Close()
	}
	if err := o.Run(req); err != nil {
		return err
	}

	switch req.Action {
	case schedule.ActionUninstall:
		fmt.Println("offtimer has been removed from this machine.")
	default:
		fmt.Printf("Daily %s scheduled at %s.\n", req.Kind, req.At)
	}
	return nil
}

// newOrchestrator wires the real filesystem, command runner and journal
// behind the detected platform profile. A journal that cannot be opened is
// logged and skipped rather than blocking the run.
func newOrchestrator() (*installer.Orchestrator, *journal.Store, error) {
	fam, err := platform.Detect()
	if err != nil {
		return nil, nil, err
	}
	prof, err := platform.NewProfile(fam)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger()
	jrnl := openJournal(log)
	o := installer.New(installer.Deps{
		FS:      afero.NewOsFs(),
		Runner:  taskctl.NewExecRunner(),
		Profile: prof,
		Log:     log,
		Journal: jrnl,
	})
	return o, jrnl, nil
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
}

func openJournal(log zerolog.Logger) *journal.Store {
	path, err := journal.DefaultPath()
	if err != nil {
		log.Warn().Err(err).Msg("operation history unavailable")
		return nil
	}
	jrnl, err := journal.Open(path)
	if err != nil {
		log.Warn().Err(err).Msg("operation history unavailable")
		return nil
	}
	return jrnl
}
