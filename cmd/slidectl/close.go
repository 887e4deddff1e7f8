package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidectl/internal/app"
	"slidectl/internal/notify"
)

func init() {
	rootCmd.AddCommand(cmdClose)
}

var cmdClose = &cobra.Command{
	Use:   "close <path>",
	Short: "Report that a file was closed; its viewers are stopped",
	Long:  `Hook for editors: stops every viewer of the file if it is tracked, and does nothing otherwise.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := controller().Close(cmd.Context(), app.CloseParams{Path: args[0], Timeout: rpcTimeout})
		if err != nil {
			return err
		}
		if res.Tracked {
			sinkFor(cmd).Notify(notify.Info, fmt.Sprintf("stopped %d process(es) for %s", res.Stopped, res.Key))
		}
		return nil
	},
}
