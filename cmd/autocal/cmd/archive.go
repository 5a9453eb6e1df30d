package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xz>",
	Short: "Export the journal to an xz archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.xz>",
	Short: "Replace the journal from an xz archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, log, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	if err := log.Export(f); err != nil {
		return err
	}
	fmt.Printf("Exported %d records to %s\n", len(log.All()), args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	_, log, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	if err := log.Import(f); err != nil {
		return err
	}
	fmt.Printf("Imported %d records from %s\n", len(log.All()), args[0])
	return nil
}
