package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all logs as JSONL, to stdout or a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import logs from a JSONL export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	n, err := export.WriteJSONL(out, a.store)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		fmt.Printf("  Exported %d log(s) to %s\n", n, args[0])
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := export.ReadJSONL(f, a.store)
	if err != nil {
		return err
	}
	fmt.Printf("  Imported %d log(s), skipped %d duplicate(s), %d malformed line(s).\n",
		res.Imported, res.Skipped, res.Malformed)
	return nil
}
