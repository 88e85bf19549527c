package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

func status(ctx *cli.Context) error {
	o, jrnl, err := newOrchestrator()
	if err != nil {
		return err
	}
	if jrnl != nil {
		defer jrnl.Close()
	}

	st := o.Status()
	fmt.Printf("trigger script:  %s\n", presence(st.ScriptInstalled))
	fmt.Printf("task descriptor: %s\n", presence(st.ArtifactsPresent))
	fmt.Printf("registration:    %s\n", presence(st.Registered))
	if st.HasSchedule {
		fmt.Printf("schedule:        daily %s at %s\n", st.Kind, st.At)
		fmt.Printf("next trigger:    %s\n", st.NextRun.Format("Mon, 02 Jan 2006 15:04"))
	} else {
		fmt.Println("schedule:        none")
	}
	return nil
}

func presence(ok bool) string {
	if ok {
		return "installed"
	}
	return "not installed"
}
