package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/offtimer/offtimer/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	app := cli.App{
		Name:                  "offtimer",
		HelpName:              "offtimer",
		Usage:                 "Schedule a daily shutdown or restart of this machine.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "offtimer <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "install",
				Aliases:                []string{"i"},
				Usage:                  "install the daily shutdown/restart task",
				Action:                 install,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            InstallDescription,
				UseShortOptionHandling: true,
				Flags:                  scheduleFlags,
			},
			{
				Name:                   "reinstall",
				Aliases:                []string{"r"},
				Usage:                  "replace the installed task with a fresh one",
				Action:                 reinstall,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ReinstallDescription,
				UseShortOptionHandling: true,
				Flags:                  scheduleFlags,
			},
			{
				Name:               "uninstall",
				Aliases:            []string{"u"},
				Usage:              "remove the task and every installed file",
				Action:             uninstall,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        UninstallDescription,
			},
			{
				Name:               "status",
				Aliases:            []string{"s"},
				Usage:              "show what is installed and when it fires next",
				Action:             status,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatusDescription,
			},
			{
				Name:                   "history",
				Aliases:                []string{"l"},
				Usage:                  "display past install and uninstall operations",
				Action:                 history,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            HistoryDescription,
				UseShortOptionHandling: true,
				Flags:                  historyFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of offtimer",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:                 interactive,
		Flags:                  scheduleFlags,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
