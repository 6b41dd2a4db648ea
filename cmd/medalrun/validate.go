package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medalrun/medalrun/internal/config"
	"github.com/medalrun/medalrun/internal/trigger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the medalrun configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Trigger config only matters for `start`, but catch bad
		// expressions here rather than at 2am.
		if cfg.Trigger != (config.Trigger{}) {
			if err := trigger.Validate(cfg.Trigger); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
