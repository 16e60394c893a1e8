package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/config"
	"github.com/emilianohg/workday/internal/db"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect and migrate the database",
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema version",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := db.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		status, err := db.GetMigrationStatus()
		if err != nil {
			fail("db status", err)
		}

		path, _ := config.DatabasePath()
		fmt.Printf("Database: %s\n", path)
		fmt.Printf("Version:  %d of %d\n", status.CurrentVersion, status.LatestVersion)
		switch {
		case status.Dirty:
			fmt.Println(warnStyle.Render("State:    dirty (a migration failed part-way)"))
		case status.Pending:
			fmt.Println(warnStyle.Render("State:    migrations pending, run 'workday db migrate'"))
		default:
			fmt.Println("State:    up to date")
		}
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := db.OpenAndMigrate(); err != nil {
			fail("db migrate", err)
		}
		defer db.Close()

		status, err := db.GetMigrationStatus()
		if err != nil {
			fail("db migrate", err)
		}
		fmt.Printf("Database at version %d.\n", status.CurrentVersion)
	},
}

func init() {
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
