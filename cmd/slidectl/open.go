package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidectl/internal/app"
	"slidectl/internal/notify"
)

func init() {
	rootCmd.AddCommand(cmdOpen)
}

var cmdOpen = &cobra.Command{
	Use:   "open <path>",
	Short: "Report that a file was opened; presentations launch when auto_launch is set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := controller().Open(cmd.Context(), app.OpenParams{Path: args[0], Timeout: rpcTimeout})
		if err != nil {
			return err
		}
		if res.Launched {
			sinkFor(cmd).Notify(notify.Info, fmt.Sprintf("launched %s (job %d, pid %d)", res.Launch.Title, res.Launch.Job, res.Launch.PID))
		}
		return nil
	},
}
