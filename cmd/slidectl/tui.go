package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidectl/internal/tui"
)

func init() {
	rootCmd.AddCommand(cmdTUI)
	cmdTUI.Flags().BoolVarP(&tuiStartDaemon, "start-daemon", "s", false, "Start a daemon in this process if none is running; it stops with the TUI")
}

var tuiStartDaemon bool

var cmdTUI = &cobra.Command{
	Use:   "tui",
	Short: "Browse and stop running presentations interactively",
	Long: `Lists every tracked viewer, one row per process, and stops a single viewer (x),
every viewer of the selected file (a) or everything (K). A daemon started from the
TUI, with --start-daemon or the s key, is shut down on exit together with its viewers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.Options{Timeout: rpcTimeout, StartDaemon: tuiStartDaemon}
		if err := tui.Run(controller(), opts); err != nil {
			return fmt.Errorf("tui exited with error: %w", err)
		}
		return nil
	},
}
