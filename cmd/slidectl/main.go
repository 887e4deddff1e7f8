package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"slidectl/internal/notify"
)

var (
	configPath   string
	debugLog     bool
	setOverrides []string
	rpcTimeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "slidectl [command]",
	Short: "slidectl: launch and clean up terminal presentations",
	Long: `slidectl opens presentation files in a terminal viewer and keeps track of
the processes it started, so they can be stopped one by one, per file, or all at once.`,
	SilenceErrors:    true,
	SilenceUsage:     true,
	PersistentPreRun: initLog,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringArrayVar(&setOverrides, "set", nil, "Override a config key, e.g. --set terminal.command_template='tmux new-window {cmd}'")
	rootCmd.PersistentFlags().DurationVarP(&rpcTimeout, "timeout", "t", 0, "Timeout for daemon calls (default: client.timeout from the config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(notify.NewConsole(os.Stderr), err)
		os.Exit(exitCode(err))
	}
}
