// Package importer loads task entries in bulk from a TOML file.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/emilianohg/workday/internal/timesheet"
)

// File is the on-disk layout:
//
//	[[task]]
//	employee = "ada@example.com"
//	description = "code review"
//	from = "2024-01-10T09:00"
//	to = "2024-01-10T11:30"
type File struct {
	Tasks []Entry `toml:"task"`
}

// Entry is one task to import. Employee is an id or an email.
type Entry struct {
	Employee    string `toml:"employee"`
	Description string `toml:"description"`
	From        string `toml:"from"`
	To          string `toml:"to"`
}

type ImportOptions struct {
	// DryRun checks each entry without writing. Entries are then checked
	// against stored tasks only, not against earlier entries in the file.
	DryRun bool
}

type ImportResult struct {
	Total    int
	Imported int
	Rejected int
	Failures []Failure
}

// Failure is a rejected entry. Index is 1-based, in file order.
type Failure struct {
	Index int
	Entry Entry
	Err   error
}

// Decode reads a task file, refusing keys it does not know.
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in import file: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// Import creates every entry in order. A rejected entry is recorded and
// the rest still run; only infrastructure failures abort the import.
func Import(svc *timesheet.Service, f *File, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{Total: len(f.Tasks)}

	for i, entry := range f.Tasks {
		err := importEntry(svc, entry, opts)
		if err == nil {
			result.Imported++
			continue
		}
		if !isRejection(err) {
			return result, fmt.Errorf("entry %d: %w", i+1, err)
		}
		result.Rejected++
		result.Failures = append(result.Failures, Failure{Index: i + 1, Entry: entry, Err: err})
	}

	return result, nil
}

func importEntry(svc *timesheet.Service, entry Entry, opts ImportOptions) error {
	employee, err := svc.ResolveEmployee(entry.Employee)
	if err != nil {
		return err
	}

	in, err := timesheet.ParseTaskInput(employee.ID, entry.Description, entry.From, entry.To, svc.Location())
	if err != nil {
		return err
	}

	if opts.DryRun {
		d, err := svc.Check(in, "")
		if err != nil {
			return err
		}
		if !d.Accepted {
			return &timesheet.BudgetError{Reason: d.Reason}
		}
		return nil
	}

	_, _, err = svc.CreateTask(in)
	return err
}

func isRejection(err error) bool {
	return errors.Is(err, timesheet.ErrValidation) ||
		errors.Is(err, timesheet.ErrBudget) ||
		errors.Is(err, timesheet.ErrNotFound)
}
