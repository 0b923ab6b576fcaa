package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/supby/zclext/internal/db"
	"github.com/supby/zclext/internal/logger"
	"github.com/supby/zclext/internal/types"
)

func newHistoryCommand(out io.Writer, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history [run-id]",
		Short: "List journaled runs, or the steps of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(opts)
			if err != nil {
				return err
			}
			if cfg.Journal.Dir == "" {
				return errors.New("no journal configured, set --journal-dir or journal.dir")
			}

			journal, err := db.NewRunJournal(cfg.Journal.Dir, db.RunJournalOptions{
				Logger: logger.NewLogger(out, "[journal]", logger.ParseLevel(cfg.LogLevel)),
			})
			if err != nil {
				return err
			}
			defer journal.Close(cmd.Context())

			if len(args) == 1 {
				run, err := journal.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printRun(out, run)
			}

			runs, err := journal.GetRuns(cmd.Context())
			if err != nil {
				return err
			}
			return printRuns(out, runs)
		},
	}
}

func printRuns(out io.Writer, runs []types.RunReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tCLUSTER\tZAP FILE")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Started.Local().Format(time.RFC3339), r.Status, r.ClusterName, r.ZapFile)
	}
	return w.Flush()
}

func printRun(out io.Writer, run types.RunReport) error {
	fmt.Fprintf(out, "Run:     %s\n", run.ID)
	fmt.Fprintf(out, "Repo:    %s\n", run.MatterRepo)
	fmt.Fprintf(out, "ZAP:     %s\n", run.ZapFile)
	fmt.Fprintf(out, "Cluster: %s\n", run.ClusterName)
	fmt.Fprintf(out, "Status:  %s\n", run.Status)
	if run.Error != "" {
		fmt.Fprintf(out, "Error:   %s\n", run.Error)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTEP\tSTATUS\tERROR")
	for _, e := range run.Steps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Time.Local().Format("15:04:05.000"), e.Step, e.Status, e.Error)
	}
	return w.Flush()
}
