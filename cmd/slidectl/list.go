package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"slidectl/internal/app"
	"slidectl/internal/notify"
)

func init() {
	rootCmd.AddCommand(cmdList)
	cmdList.Flags().BoolVar(&listJSON, "json", false, "Print the snapshot as JSON")
}

var listJSON bool

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "List running presentations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := controller().List(cmd.Context(), app.ListParams{Timeout: rpcTimeout})
		if err != nil {
			return err
		}
		if listJSON {
			return writeJSON(cmd.OutOrStdout(), entries)
		}
		sinkFor(cmd).Notify(notify.Info, formatEntries(entries))
		return nil
	},
}

func formatEntries(entries []app.Entry) string {
	if len(entries) == 0 {
		return "no running presentations"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d presentation(s) running", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s (%s)", e.Title, e.Key)
		for _, p := range e.Procs {
			state := "alive"
			if !p.Alive {
				state = "exited"
			}
			pid := "-"
			if p.PID > 0 {
				pid = fmt.Sprint(p.PID)
			}
			fmt.Fprintf(&b, "\n  [%d] pid=%s job=%d %s", p.Index, pid, p.Job, state)
		}
	}
	return b.String()
}

func writeJSON(w io.Writer, entries []app.Entry) error {
	if entries == nil {
		entries = []app.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
