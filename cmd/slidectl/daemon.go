package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(cmdDaemon)
	cmdDaemon.Flags().BoolVarP(&daemonForceRestart, "force", "f", false, "Restart the daemon if it is already running")
}

var daemonForceRestart bool

var cmdDaemon = &cobra.Command{
	Use:   "daemon",
	Short: "Run the daemon in the foreground",
	Long: `The daemon owns the registry of launched viewers. It runs until SIGINT or
SIGTERM and stops every viewer it launched before exiting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller()
		out := cmd.OutOrStdout()

		status, err := ctrl.Status()
		if status.Running {
			if !daemonForceRestart {
				switch {
				case err != nil:
					fmt.Fprintf(out, "Error checking if daemon is running: %v\n", err)
				case status.PID != 0:
					fmt.Fprintf(out, "Daemon is already running (pid %d). Stop it manually or re-run with --force.\n", status.PID)
				default:
					fmt.Fprintln(out, "Daemon is already running. Stop it manually or re-run with --force.")
				}
				return nil
			}
			fmt.Fprintln(out, "Stopping existing daemon process...")
			if err := ctrl.StopDaemon(true); err != nil {
				return err
			}
		}

		handle, err := ctrl.StartDaemon()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Started daemon process (pid %d)\n", os.Getpid())

		var runSpin *spinner.Spinner
		if term.IsTerminal(int(os.Stdout.Fd())) {
			runSpin = spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stdout))
			runSpin.Suffix = " Running..."
			runSpin.Start()
		}

		sigc := make(chan os.Signal, 2)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		if runSpin != nil {
			runSpin.Stop()
		}
		return handle.Close()
	},
}
