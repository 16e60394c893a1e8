package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/db"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <employee> [date]",
	Short: "Show an employee's hours for one day",
	Long: `Show the tasks an employee logged on a day (YYYY-MM-DD, default today)
with the day's total and the hours left in the 8-hour budget.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		day := budget.DayOf(time.Now().In(svc.Location()))
		if len(args) == 2 {
			day = args[1]
		}

		e, err := svc.ResolveEmployee(args[0])
		if err != nil {
			fail("summary", err)
		}
		sum, err := svc.Summarize(e.ID, day)
		if err != nil {
			fail("summary", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(sum); err != nil {
				fail("summary", err)
			}
			return
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("%s, %s", sum.Employee.Name, sum.Date)))
		if len(sum.Tasks) == 0 {
			fmt.Println(dimStyle.Render("No tasks on this day."))
		} else {
			rows := make([][]string, 0, len(sum.Tasks))
			for _, t := range sum.Tasks {
				rows = append(rows, []string{
					t.From.Format("15:04") + "-" + t.To.Format("15:04"),
					fmt.Sprintf("%.2f", t.Duration),
					t.Description,
				})
			}
			printTable([]string{"WINDOW", "HOURS", "DESCRIPTION"}, rows)
		}

		remaining := fmt.Sprintf("%.2fh remaining", sum.RemainingHours)
		if sum.RemainingHours == 0 {
			remaining = warnStyle.Render(remaining)
		}
		fmt.Printf("Total %.2fh, %s\n", sum.TotalHours, remaining)
	},
}

func init() {
	summaryCmd.Flags().Bool("json", false, "Print the summary as JSON")
}
