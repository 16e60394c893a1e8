package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/timesheet"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"employees", "emp"},
	Short:   "Manage employees",
}

var employeeAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Create an employee",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		phone, _ := cmd.Flags().GetString("phone")
		position, _ := cmd.Flags().GetString("position")

		e, err := svc.CreateEmployee(timesheet.EmployeeInput{
			Name:     args[0],
			Email:    args[1],
			Phone:    phone,
			Position: position,
		})
		if err != nil {
			fail("employee add", err)
		}
		fmt.Printf("Created employee %s (%s)\n", e.Name, e.ID)
	},
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		employees, err := svc.ListEmployees()
		if err != nil {
			fail("employee list", err)
		}
		if len(employees) == 0 {
			fmt.Println("No employees yet.")
			return
		}

		rows := make([][]string, 0, len(employees))
		for _, e := range employees {
			rows = append(rows, []string{e.ID, e.Name, e.Email, e.Position})
		}
		printTable([]string{"ID", "NAME", "EMAIL", "POSITION"}, rows)
	},
}

var employeeShowCmd = &cobra.Command{
	Use:   "show <id|email>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		e, err := svc.ResolveEmployee(args[0])
		if err != nil {
			fail("employee show", err)
		}
		fmt.Printf("ID:       %s\n", e.ID)
		fmt.Printf("Name:     %s\n", e.Name)
		fmt.Printf("Email:    %s\n", e.Email)
		fmt.Printf("Phone:    %s\n", e.Phone)
		fmt.Printf("Position: %s\n", e.Position)
		fmt.Printf("Created:  %s\n", e.CreatedAt.In(svc.Location()).Format("Jan 02, 2006 15:04"))
	},
}

var employeeEditCmd = &cobra.Command{
	Use:   "edit <id|email>",
	Short: "Change an employee's name, phone or position",
	Long: `Change an employee's name, phone or position. Only the flags given are
applied. The email address cannot be changed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		e, err := svc.ResolveEmployee(args[0])
		if err != nil {
			fail("employee edit", err)
		}

		var patch timesheet.EmployeePatch
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			patch.Name = &v
		}
		if cmd.Flags().Changed("phone") {
			v, _ := cmd.Flags().GetString("phone")
			patch.Phone = &v
		}
		if cmd.Flags().Changed("position") {
			v, _ := cmd.Flags().GetString("position")
			patch.Position = &v
		}

		updated, err := svc.UpdateEmployee(e.ID, patch)
		if err != nil {
			fail("employee edit", err)
		}
		fmt.Printf("Updated employee %s\n", updated.Name)
	},
}

var employeeRmCmd = &cobra.Command{
	Use:   "rm <id|email>",
	Short: "Delete an employee and all of their tasks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := mustOpen()
		defer db.Close()

		e, err := svc.ResolveEmployee(args[0])
		if err != nil {
			fail("employee rm", err)
		}
		removed, err := svc.DeleteEmployee(e.ID)
		if err != nil {
			fail("employee rm", err)
		}
		fmt.Printf("Deleted employee %s and %d tasks\n", e.Name, removed)
	},
}

func init() {
	employeeAddCmd.Flags().String("phone", "", "Phone number")
	employeeAddCmd.Flags().String("position", "", "Job position")

	employeeEditCmd.Flags().String("name", "", "New name")
	employeeEditCmd.Flags().String("phone", "", "New phone number")
	employeeEditCmd.Flags().String("position", "", "New position")

	employeeCmd.AddCommand(employeeAddCmd)
	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeShowCmd)
	employeeCmd.AddCommand(employeeEditCmd)
	employeeCmd.AddCommand(employeeRmCmd)
}
