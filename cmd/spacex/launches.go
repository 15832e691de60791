package main

import (
	"fmt"
	"os"

	"github.com/brunojasgv/spacex"
	"github.com/spf13/cobra"
)

var launchesCmd = &cobra.Command{
	Use:   "launches",
	Short: "List launches",
	Long:  "Fetch every launch and print it through a filter: successful, failed, ascending (by date, the default) or descending.",
	RunE:  runLaunches,
}

var launchesArgs struct {
	filter string
}

func init() {
	launchesCmd.Flags().StringVar(
		&launchesArgs.filter,
		"filter",
		"",
		"Filter mode: successful, failed, ascending or descending (defaults to default_filter)",
	)
}

func runLaunches(cmd *cobra.Command, argv []string) error {
	vm := current.vm
	if launchesArgs.filter != "" {
		mode, err := spacex.ParseFilterMode(launchesArgs.filter)
		if err != nil {
			return err
		}
		if err := vm.SetFilter(mode); err != nil {
			return err
		}
	}

	states, cancel := vm.SubscribeLaunches()
	defer cancel()
	vm.FetchLaunches(cmd.Context())

	for state := range states {
		switch state.Status() {
		case spacex.StatusLoading:
			fmt.Fprintln(os.Stderr, "fetching launches...")
		case spacex.StatusFailed:
			return fmt.Errorf("fetching launches : %w", state.Err())
		case spacex.StatusLoaded:
			return renderer{out: cmd.OutOrStdout()}.launches(vm.FilteredLaunches())
		}
	}
	return nil
}
