package main

import (
	"fmt"
	"os"

	"github.com/brunojasgv/spacex"
	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Show the company record",
	RunE:  runCompany,
}

func runCompany(cmd *cobra.Command, argv []string) error {
	states, cancel := current.vm.SubscribeInfo()
	defer cancel()
	current.vm.FetchInfo(cmd.Context())

	for state := range states {
		switch state.Status() {
		case spacex.StatusLoading:
			fmt.Fprintln(os.Stderr, "fetching company...")
		case spacex.StatusFailed:
			return fmt.Errorf("fetching company : %w", state.Err())
		case spacex.StatusLoaded:
			company, _ := state.Value()
			return renderer{out: cmd.OutOrStdout()}.company(company)
		}
	}
	return nil
}
