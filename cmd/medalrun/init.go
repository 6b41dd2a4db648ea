package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterConfig = `# medalrun configuration
database: retail_dwh.db
log_file: pipeline_execution.log
report_file: pipeline_execution_report.csv

pipeline:
  driver: exec
  command: ./run_pipeline
  timeout: 30m
  args:
    batch_size: 500

trigger:
  cron: "0 2 * * *"

# services:
#   telegram:
#     url: telegram://${TELEGRAM_TOKEN}@telegram
#     params:
#       chats: "${TELEGRAM_CHAT_ID}"
# notify:
#   - telegram
# notify_on: failure
`

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "medalrun.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, not overwriting", path)
		}

		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
