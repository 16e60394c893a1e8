package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/config"
	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/timesheet"
	"github.com/emilianohg/workday/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "workday",
	Short: "Employee time tracking with an 8-hour daily budget",
	Long: `Workday records employees and the tasks they perform, and refuses any
task that would push an employee past 8 hours of work in a calendar day.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := mustOpen()
		defer db.Close()

		// Launch TUI
		if err := tui.Run(svc, cfg); err != nil {
			fail("tui", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dbCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mustOpen loads the config, opens the database and returns a service
// bound to the configured timezone. A fresh database is migrated on the
// spot; an outdated one is left for `workday db migrate`.
func mustOpen() (*timesheet.Service, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	// Run initial migration if this is a fresh database
	status, err := db.GetMigrationStatus()
	if err != nil {
		fail("migrate", err)
	}
	if status.CurrentVersion == 0 {
		if err := db.RunMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running initial migrations: %v\n", err)
			os.Exit(1)
		}
	} else if status.Pending || status.Dirty {
		fmt.Fprintln(os.Stderr, "Database schema is out of date. Run 'workday db migrate'.")
		os.Exit(1)
	}

	return timesheet.New(database, loc), cfg
}

// fail reports err to the user and exits. Only infrastructure failures
// go to the error log; rejected input is the user's to fix.
func fail(scope string, err error) {
	var be *timesheet.BudgetError
	switch {
	case errors.As(err, &be):
		fmt.Fprintf(os.Stderr, "Rejected: %v\n", err)
		if be.HasHours {
			fmt.Fprintf(os.Stderr, "Logged %.2fh, %.2fh remaining on that day.\n", be.CurrentHours, be.RemainingHours)
		}
	case errors.Is(err, timesheet.ErrNotFound),
		errors.Is(err, timesheet.ErrValidation),
		errors.Is(err, timesheet.ErrConflict):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	default:
		logError(scope, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	db.Close()
	os.Exit(1)
}

func logError(scope string, err error) {
	logPath, pathErr := config.ErrorLogPath()
	if pathErr != nil {
		return
	}

	// Ensure directory exists
	if err := config.EnsureDirectories(); err != nil {
		return
	}

	f, fileErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fileErr != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] %v\n", scope, err)
}
