package cmd

import "github.com/urfave/cli"

var (
	scheduleType string
	scheduleTime string
	defaultsPath string
	noPrompt     bool

	historyLimit int
	historyClear bool
)

var scheduleFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "type, t",
		Usage:       "what the task does every day: shutdown or restart",
		EnvVar:      "OFFTIMER_TYPE",
		Destination: &scheduleType,
	},
	cli.StringFlag{
		Name:        "time, a",
		Usage:       "time of day to trigger, 24-hour HH:mm",
		EnvVar:      "OFFTIMER_TIME",
		Destination: &scheduleTime,
	},
	cli.StringFlag{
		Name:        "config, c",
		Usage:       "YAML file supplying default type/time values",
		EnvVar:      "OFFTIMER_CONFIG",
		Destination: &defaultsPath,
	},
	cli.BoolFlag{
		Name:        "no-prompt, n",
		Usage:       "fail on missing parameters instead of prompting",
		Destination: &noPrompt,
	},
}

var historyFlags = []cli.Flag{
	cli.IntFlag{
		Name:        "limit, n",
		Usage:       "number of operations to display",
		Value:       20,
		Destination: &historyLimit,
	},
	cli.BoolFlag{
		Name:        "clear",
		Usage:       "delete the recorded operation history",
		Destination: &historyClear,
	},
}
