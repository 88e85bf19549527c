// Package installer sequences a validated request through artifact
// mutation, script provisioning and native-scheduler registration. It is
// the single place failures funnel through: each run either completes or
// stops at the first error, and re-running install or reinstall is the
// documented recovery path — no partial rollback is attempted.
package installer

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/offtimer/offtimer/internal/artifact"
	"github.com/offtimer/offtimer/internal/journal"
	"github.com/offtimer/offtimer/internal/platform"
	"github.com/offtimer/offtimer/internal/provision"
	"github.com/offtimer/offtimer/internal/schedule"
	"github.com/offtimer/offtimer/internal/taskctl"
)

// Deps carries the run context: the immutable platform profile plus the
// injectable filesystem and command runner every stage shares.
type Deps struct {
	FS      afero.Fs
	Runner  taskctl.Runner
	Profile *platform.Profile
	Log     zerolog.Logger

	// Journal is optional; a nil journal disables audit logging.
	Journal *journal.Store
}

// Orchestrator drives one provisioning run end to end.
type Orchestrator struct {
	fs      afero.Fs
	prof    *platform.Profile
	log     zerolog.Logger
	editor  artifact.Editor
	prov    *provision.Provisioner
	ctl     *taskctl.Controller
	journal *journal.Store
}

// New wires an Orchestrator from its dependencies.
func New(d Deps) *Orchestrator {
	return &Orchestrator{
		fs:      d.FS,
		prof:    d.Profile,
		log:     d.Log,
		editor:  artifact.NewEditor(d.FS, d.Profile),
		prov:    provision.New(d.FS, d.Profile),
		ctl:     taskctl.NewController(taskctl.NewBackend(d.Runner, d.Profile), d.Log),
		journal: d.Journal,
	}
}

// Run executes the requested action and records the outcome in the
// journal. The returned error is already suitable for a single user-facing
// line.
func (o *Orchestrator) Run(req schedule.Request) error {
	var err error
	switch req.Action {
	case schedule.ActionInstall:
		err = o.install(req, false)
	case schedule.ActionReinstall:
		err = o.install(req, true)
	case schedule.ActionUninstall:
		err = o.uninstall()
	default:
		err = fmt.Errorf("%w: action", schedule.ErrInvalidInput)
	}
	o.record(req, err)
	return err
}

func (o *Orchestrator) install(req schedule.Request, replace bool) error {
	o.log.Info().
		Str("platform", string(o.prof.Family)).
		Str("type", string(req.Kind)).
		Str("time", req.At.String()).
		Msg("provisioning schedule")

	if err := artifact.Materialize(o.fs, o.prof); err != nil {
		return err
	}
	if err := o.editor.ApplySchedule(req); err != nil {
		return err
	}
	if err := o.prov.InstallScript(); err != nil {
		return err
	}
	if replace {
		return o.ctl.Reinstall()
	}
	return o.ctl.Install()
}

func (o *Orchestrator) uninstall() error {
	o.log.Info().Str("platform", string(o.prof.Family)).Msg("removing schedule")

	if err := o.ctl.Uninstall(); err != nil {
		return err
	}
	if err := o.prov.RemoveScript(); err != nil {
		return err
	}
	if err := o.prov.RemoveArtifacts(); err != nil {
		return err
	}
	return o.ctl.PostRemove()
}

func (o *Orchestrator) record(req schedule.Request, runErr error) {
	if o.journal == nil {
		return
	}
	entry := journal.Entry{
		At:      time.Now(),
		Action:  string(req.Action),
		Kind:    string(req.Kind),
		Success: runErr == nil,
	}
	if req.Action != schedule.ActionUninstall {
		entry.Clock = req.At.String()
	}
	if runErr != nil {
		entry.Message = runErr.Error()
	}
	if err := o.journal.Append(entry); err != nil {
		o.log.Warn().Err(err).Msg("could not record operation in journal")
	}
}

// Status is a read-only snapshot of what is installed right now.
type Status struct {
	ScriptInstalled  bool
	ArtifactsPresent bool
	Registered       bool

	// Schedule fields are meaningful only when HasSchedule is set: the
	// artifacts were present and parsed cleanly.
	HasSchedule bool
	Kind        schedule.Kind
	At          schedule.Clock
	NextRun     time.Time
}

// Status inspects the filesystem and probes the native scheduler. It never
// fails outright: unreadable or unparsable artifacts simply read as "no
// schedule".
func (o *Orchestrator) Status() Status {
	var st Status
	st.ScriptInstalled, _ = o.prov.ScriptInstalled()

	st.ArtifactsPresent = true
	for _, path := range o.prof.ArtifactPaths() {
		ok, _ := afero.Exists(o.fs, path)
		if !ok {
			st.ArtifactsPresent = false
			break
		}
	}
	st.Registered = o.ctl.Registered()

	if st.ArtifactsPresent {
		if at, kind, err := o.editor.Schedule(); err == nil {
			st.HasSchedule = true
			st.At = at
			st.Kind = kind
			st.NextRun = nextRun(at, time.Now())
		}
	}
	return st
}

// nextRun computes the next daily trigger after now.
func nextRun(at schedule.Clock, now time.Time) time.Time {
	spec, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", at.Minute, at.Hour))
	if err != nil {
		return time.Time{}
	}
	return spec.Next(now)
}
