package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidectl/internal/notify"
)

func init() {
	rootCmd.AddCommand(cmdStopAll)
}

var cmdStopAll = &cobra.Command{
	Use:   "stop-all",
	Short: "Stop every tracked viewer",
	Long:  `Stops every viewer of every file and clears the registry, even when some stops fail.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := controller().StopEverything(cmd.Context(), rpcTimeout)
		if err != nil {
			return err
		}
		sinkFor(cmd).Notify(notify.Info, fmt.Sprintf("stopped %d process(es)", n))
		return nil
	},
}
