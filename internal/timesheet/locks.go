package timesheet

import (
	"sort"
	"sync"
)

// dayLocks serializes budget checks and their writes per (employee, day)
// so two writers can't both pass the check on the same prior total.
type dayLocks struct {
	mu    sync.Mutex
	locks map[string]*dayLock
}

type dayLock struct {
	mu   sync.Mutex
	refs int
}

func newDayLocks() *dayLocks {
	return &dayLocks{locks: make(map[string]*dayLock)}
}

func dayKey(employeeID, day string) string {
	return employeeID + "|" + day
}

// Lock acquires every key in sorted order and returns a func releasing
// them. Duplicate keys are acquired once.
func (l *dayLocks) Lock(keys ...string) func() {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)

	held := make([]*dayLock, 0, len(sorted))
	for _, k := range sorted {
		l.mu.Lock()
		dl, ok := l.locks[k]
		if !ok {
			dl = &dayLock{}
			l.locks[k] = dl
		}
		dl.refs++
		l.mu.Unlock()

		dl.mu.Lock()
		held = append(held, dl)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()

			l.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, sorted[i])
			}
			l.mu.Unlock()
		}
	}
}
