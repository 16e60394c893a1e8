package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <employee> [date]",
	Short: "Write a weekly markdown report",
	Long: `Write a markdown report of the Monday to Sunday week containing date
(default today) to reports_output.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := mustOpen()
		defer db.Close()

		day := budget.DayOf(time.Now().In(svc.Location()))
		if len(args) == 2 {
			day = args[1]
		}

		week, err := report.Build(svc, args[0], day)
		if err != nil {
			fail("report", err)
		}

		dir := cfg.ReportsOutput
		if out, _ := cmd.Flags().GetString("output"); out != "" {
			dir = out
		}
		path, err := report.WriteFile(dir, week)
		if err != nil {
			fail("report", err)
		}
		fmt.Printf("Week %s to %s: %.2fh\n", week.Start, week.End, week.TotalHours)
		fmt.Printf("Report written to %s\n", path)
	},
}

func init() {
	reportCmd.Flags().StringP("output", "o", "", "Output directory (default: reports_output from config)")
}
