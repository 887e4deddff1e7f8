package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdCheck)
}

var cmdCheck = &cobra.Command{
	Use:   "check <path>",
	Short: "Tell whether a file is a presentation (exit 1 if not)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := controller().Check(args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not a presentation\n", args[0])
			return exitError{code: 1}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: presentation\n", args[0])
		return nil
	},
}
