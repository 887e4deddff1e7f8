package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidectl/internal/app"
	"slidectl/internal/notify"
)

func init() {
	rootCmd.AddCommand(cmdLaunch)
}

var cmdLaunch = &cobra.Command{
	Use:   "launch [path]",
	Short: "Open a presentation in a terminal viewer",
	Long: `Builds the viewer command for the file and starts it through the daemon.
Without a path, the only presentation file in the working directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		res, err := controller().Launch(cmd.Context(), app.LaunchParams{Path: path, Timeout: rpcTimeout})
		if err != nil {
			return err
		}
		sinkFor(cmd).Notify(notify.Info, fmt.Sprintf("launched %s (job %d, pid %d)", res.Title, res.Job, res.PID))
		return nil
	},
}
