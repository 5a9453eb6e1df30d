package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print today/week/month performance summaries",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var reportPublish bool

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportPublish, "publish", false, "also publish to the configured channel")
}

func runReport(cmd *cobra.Command, args []string) error {
	e, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	reports := e.Reports()
	fmt.Println(strings.Join(reports, "\n\n"))

	if reportPublish {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := newNotifier(cfg).Publish(reports); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}
	return nil
}
