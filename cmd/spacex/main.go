// Command spacex prints SpaceX launches and company information.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:               "spacex",
	Short:             "Browse SpaceX launches and company information",
	Long:              "Fetch the SpaceX launch list and company record from the public API, filter the launches and keep a local history of every request.",
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, argv []string) error {
		return current.Close()
	},
	SilenceUsage: true,
}

var args struct {
	configDir string
	baseURL   string
	retries   int
	logFile   string
	logLevel  string
	logFormat string
	chrome    bool
	noHistory bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		current.Close()
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	flags := Cmd.PersistentFlags()

	flags.StringVar(
		&args.configDir,
		"config-dir",
		"",
		"Configuration directory (defaults to the spacex folder in the user configuration directory)",
	)
	flags.StringVar(
		&args.baseURL,
		"base-url",
		"",
		"API origin",
	)
	flags.IntVar(
		&args.retries,
		"retries",
		0,
		"Additional attempts for a failed request",
	)
	flags.StringVar(
		&args.logFile,
		"log-file",
		"",
		"Write logs to a rotated file instead of stderr",
	)
	flags.StringVar(
		&args.logLevel,
		"log-level",
		"info",
		"Log level: debug, info, warn or error",
	)
	flags.StringVar(
		&args.logFormat,
		"log-format",
		"text",
		"Log format: text or json",
	)
	flags.BoolVar(
		&args.chrome,
		"chrome",
		false,
		"Dial TLS with a Chrome ClientHello",
	)
	flags.BoolVar(
		&args.noHistory,
		"no-history",
		false,
		"Do not record requests in the history database",
	)

	Cmd.AddCommand(launchesCmd, companyCmd, historyCmd, watchCmd, configCmd)
}
