package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"slidectl/internal/app"
	"slidectl/internal/notify"
)

func init() {
	rootCmd.AddCommand(cmdStop)
	cmdStop.Flags().IntVarP(&stopIndex, "index", "i", 0, "1-based index from 'slidectl list' (default: every viewer of the file)")
}

var stopIndex int

var cmdStop = &cobra.Command{
	Use:   "stop [path] [index]",
	Short: "Stop the viewers of a presentation",
	Long: `Stops one viewer of the file when an index is given, otherwise all of them.
Indices are the 1-based numbers shown by 'slidectl list' and shift after a stop.
Without a path, the only presentation file in the working directory is used.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := app.StopParams{Index: stopIndex, Timeout: rpcTimeout}
		if len(args) > 0 {
			params.Path = args[0]
		}
		if len(args) == 2 {
			idx, err := strconv.Atoi(args[1])
			if err != nil || idx < 1 {
				return fmt.Errorf("invalid index %q: must be a positive integer", args[1])
			}
			params.Index = idx
		}
		res, err := controller().Stop(cmd.Context(), params)
		if err != nil {
			return err
		}
		sinkFor(cmd).Notify(notify.Info, fmt.Sprintf("stopped %d process(es) for %s", res.Stopped, res.Key))
		return nil
	},
}
