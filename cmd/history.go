package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/offtimer/offtimer/internal/journal"
)

func history(ctx *cli.Context) error {
	path, err := journal.DefaultPath()
	if err != nil {
		return err
	}
	jrnl, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer jrnl.Close()

	if historyClear {
		if err := jrnl.Clear(); err != nil {
			return err
		}
		fmt.Println("Operation history cleared.")
		return nil
	}

	entries, err := jrnl.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No operations recorded yet.")
		return nil
	}
	for _, e := range entries {
		outcome := "ok"
		if !e.Success {
			outcome = "failed"
		}
		line := fmt.Sprintf("%s  %-9s", e.At.Local().Format("2006-01-02 15:04"), e.Action)
		if e.Kind != "" {
			line += fmt.Sprintf("  %s at %s", e.Kind, e.Clock)
		}
		line += "  " + outcome
		if e.Message != "" {
			line += "  (" + e.Message + ")"
		}
		fmt.Println(line)
	}
	return nil
}
