package cmd

const DESCRIPTION = `
Offtimer provisions a daily scheduled shutdown or restart
of this machine using the operating system's own scheduler:
Task Scheduler on Windows, launchd on macOS and systemd
timers on Linux. Install once, and the machine powers down
or restarts at the same time every day until you uninstall.
`

const (
	InstallDescription = `The install command provisions the daily task. It writes
the scheduling descriptor and the trigger script to their
system locations and registers the task with the native
scheduler. Missing parameters are asked for interactively
unless --no-prompt is set.

Must be run elevated (root on macOS/Linux, an administrator
shell on Windows).

Example:
        offtimer install --type shutdown --time 22:00

`
	ReinstallDescription = `The reinstall command replaces whatever task is currently
installed with a freshly provisioned one. A missing prior
installation is not an error, so reinstall also doubles as
a repair command.

Example:
        offtimer reinstall -t restart -a 06:15

`
	UninstallDescription = `The uninstall command deregisters the task and deletes the
trigger script and scheduling descriptors. Running it on a
machine with nothing installed succeeds quietly.

Example:
        offtimer uninstall

`
	StatusDescription = `The status command reports which pieces are currently in
place: the trigger script, the scheduling descriptors and
the native registration, plus the configured action and the
next time it will fire.

Example:
        offtimer status

`
	HistoryDescription = `The history command lists past install, reinstall and
uninstall operations recorded on this machine, newest
first. Use --clear to wipe the record.

Example:
        offtimer history -n 5

`
)
