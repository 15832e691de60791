package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded requests",
	Long:  "Print the most recent request attempts from the history database, newest first, or the journal of fetch outcomes and state changes.",
	RunE:  runHistory,
}

var historyArgs struct {
	limit int
	stats bool
	logs  bool
}

func init() {
	flags := historyCmd.Flags()
	flags.IntVar(
		&historyArgs.limit,
		"limit",
		20,
		"Number of attempts to show, 0 for all",
	)
	flags.BoolVar(
		&historyArgs.stats,
		"stats",
		false,
		"Print the number of attempts per outcome instead",
	)
	flags.BoolVar(
		&historyArgs.logs,
		"logs",
		false,
		"Print the most recent journal entries instead, oldest first",
	)
}

func runHistory(cmd *cobra.Command, argv []string) error {
	if current.repo == nil {
		return errors.New("history is disabled, set history_db in the configuration")
	}
	r := renderer{out: cmd.OutOrStdout()}
	if historyArgs.stats {
		counts, err := current.repo.CountFetchRecords()
		if err != nil {
			return err
		}
		return r.counts(counts)
	}
	if historyArgs.logs {
		logs, err := current.repo.GetLogs()
		if err != nil {
			return err
		}
		if historyArgs.limit > 0 && len(logs) > historyArgs.limit {
			logs = logs[len(logs)-historyArgs.limit:]
		}
		return r.logs(logs)
	}
	records, err := current.repo.GetFetchRecords(historyArgs.limit)
	if err != nil {
		return err
	}
	return r.history(records)
}
