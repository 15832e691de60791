package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, argv []string) error {
		settings := current.cfg.Viper().AllSettings()
		keys := make([]string, 0, len(settings))
		for key := range settings {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Fprintf(cmd.OutOrStdout(), "config_dir: %s\n", current.cfg.ConfigDir)
		for _, key := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", key, settings[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Persist a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, argv []string) error {
		if !current.cfg.Viper().IsSet(argv[0]) {
			return fmt.Errorf("unknown configuration key %q", argv[0])
		}
		return current.cfg.Set(argv[0], argv[1])
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
