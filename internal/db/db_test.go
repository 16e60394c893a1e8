package db

import (
	"path/filepath"
	"testing"
)

func TestMigrate_FreshDatabase(t *testing.T) {
	conn, err := OpenPath(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer conn.Close()

	before, err := MigrationStatusOf(conn)
	if err != nil {
		t.Fatalf("MigrationStatusOf: %v", err)
	}
	if before.CurrentVersion != 0 || !before.Pending {
		t.Fatalf("unexpected status before migrating: %+v", before)
	}

	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Second run is a no-op.
	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate (again): %v", err)
	}

	after, err := MigrationStatusOf(conn)
	if err != nil {
		t.Fatalf("MigrationStatusOf: %v", err)
	}
	if after.Pending || after.Dirty || after.CurrentVersion != after.LatestVersion {
		t.Fatalf("unexpected status after migrating: %+v", after)
	}

	for _, table := range []string{"employees", "tasks"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestOpen_UsesWorkdayHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WORKDAY_HOME", home)
	defer Close()

	conn, err := OpenAndMigrate()
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	if conn != Get() {
		t.Fatal("Get should return the open connection")
	}

	status, err := GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus: %v", err)
	}
	if status.Pending {
		t.Fatalf("expected no pending migrations: %+v", status)
	}
}
