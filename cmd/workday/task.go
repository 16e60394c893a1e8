package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/models"
	"github.com/emilianohg/workday/internal/timesheet"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Log and manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <employee> <from> <to> <description>",
	Short: "Log a task",
	Long: `Log a task for an employee, given by id or email. Times are ISO-8601
instants; values without an offset are read in the configured timezone.

Examples:
  workday task add ada@example.com 2024-01-10T09:00 2024-01-10T12:30 "Sprint planning"
  workday task add ada@example.com 2024-01-10T13:00:00Z 2024-01-10T15:00:00Z "Review" --check`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		in := mustTaskInput(svc, args[0], args[3], args[1], args[2])

		if check, _ := cmd.Flags().GetBool("check"); check {
			d, err := svc.Check(in, "")
			if err != nil {
				fail("task add", err)
			}
			if !d.Accepted {
				fmt.Printf("Would be rejected: %s\n", d.Reason)
				return
			}
			fmt.Printf("Would be accepted: %.2fh on %s, %.2fh remaining\n", d.Hours, d.Day, d.RemainingHours)
			return
		}

		t, d, err := svc.CreateTask(in)
		if err != nil {
			fail("task add", err)
		}
		fmt.Printf("Logged %.2fh on %s (%s)\n", t.Duration, t.Date, t.ID)
		fmt.Printf("Day total %.2fh, %.2fh remaining\n", d.TotalHours, d.RemainingHours)
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id> <from> <to> [description]",
	Short: "Change a task's window or description",
	Args:  cobra.RangeArgs(3, 4),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		current, err := svc.GetTask(args[0])
		if err != nil {
			fail("task edit", err)
		}
		description := current.Description
		if len(args) == 4 {
			description = args[3]
		}

		in := mustTaskInput(svc, current.EmployeeID, description, args[1], args[2])
		t, d, err := svc.UpdateTask(current.ID, in)
		if err != nil {
			fail("task edit", err)
		}
		fmt.Printf("Updated task %s: %.2fh on %s\n", t.ID, t.Duration, t.Date)
		fmt.Printf("Day total %.2fh, %.2fh remaining\n", d.TotalHours, d.RemainingHours)
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		if err := svc.DeleteTask(args[0]); err != nil {
			fail("task rm", err)
		}
		fmt.Println("Task deleted.")
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list [employee]",
	Short: "List tasks, optionally for one employee",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		var (
			tasks []models.Task
			err   error
		)
		if len(args) == 1 {
			e, rerr := svc.ResolveEmployee(args[0])
			if rerr != nil {
				fail("task list", rerr)
			}
			tasks, err = svc.ListTasksByEmployee(e.ID)
		} else {
			tasks, err = svc.ListTasks()
		}
		if err != nil {
			fail("task list", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return
		}

		rows := make([][]string, 0, len(tasks))
		for _, t := range tasks {
			rows = append(rows, []string{
				t.ID,
				t.EmployeeName,
				t.Date,
				t.From.Format("15:04") + "-" + t.To.Format("15:04"),
				fmt.Sprintf("%.2f", t.Duration),
				t.Description,
			})
		}
		printTable([]string{"ID", "EMPLOYEE", "DATE", "WINDOW", "HOURS", "DESCRIPTION"}, rows)
	},
}

// mustTaskInput resolves the employee and parses the task window.
func mustTaskInput(svc *timesheet.Service, employeeRef, description, from, to string) timesheet.TaskInput {
	e, err := svc.ResolveEmployee(employeeRef)
	if err != nil {
		fail("task", err)
	}
	in, err := timesheet.ParseTaskInput(e.ID, description, from, to, svc.Location())
	if err != nil {
		fail("task", err)
	}
	return in
}

func init() {
	taskAddCmd.Flags().Bool("check", false, "Only check the task against the daily budget")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskListCmd)
}
