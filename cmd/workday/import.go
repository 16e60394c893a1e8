package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Import tasks from a TOML file",
	Long: `Import tasks from a TOML file. Entries are validated in file order, so
an entry is checked against the ones imported before it.

Example file:
  [[task]]
  employee = "ada@example.com"
  description = "Sprint planning"
  from = "2024-01-10T09:00"
  to = "2024-01-10T11:30"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		file, err := importer.Decode(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		svc, _ := mustOpen()
		defer db.Close()

		opts := importer.ImportOptions{}
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

		fmt.Println("Importing tasks...")

		result, err := importer.Import(svc, file, opts)
		if err != nil {
			fail("import", err)
		}

		fmt.Printf("Found: %d entries\n", result.Total)
		if opts.DryRun {
			fmt.Printf("Would import: %d\n", result.Imported)
		} else {
			fmt.Printf("Imported: %d\n", result.Imported)
		}
		fmt.Printf("Rejected: %d\n", result.Rejected)

		for _, rej := range result.Failures {
			fmt.Printf("  #%d %s (%s): %v\n", rej.Index, rej.Entry.Description, rej.Entry.Employee, rej.Err)
		}
	},
}

func init() {
	importCmd.Flags().BoolP("dry-run", "n", false, "Check entries without writing them")
}
