package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql": {Data: []byte("CREATE INDEX idx ON t(a);")},
		"001_init.sql":      {Data: []byte("CREATE TABLE t (a TEXT);")},
		"notes.txt":         {Data: []byte("ignored")},
	}

	runner := NewRunner(nil, fsys, DialectSQLite)
	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("got %d migrations, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Errorf("migrations[0] = %+v, want version 1 name init", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "add_index" {
		t.Errorf("migrations[1] = %+v, want version 2 name add_index", migrations[1])
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"no underscore", "001.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"zero version", "000_init.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{tt.file: {Data: []byte("SELECT 1;")}}
			runner := NewRunner(nil, fsys, DialectSQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Errorf("expected error for filename %q", tt.file)
			}
		})
	}
}

func TestReadMigrationFilesRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("CREATE TABLE a (x TEXT);")},
		"001_other.sql": {Data: []byte("CREATE TABLE b (x TEXT);")},
	}
	runner := NewRunner(nil, fsys, DialectSQLite)
	if _, err := runner.ReadMigrationFiles(); err == nil {
		t.Error("expected error for duplicate migration versions")
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":     {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
		"002_add_name.sql": {Data: []byte("ALTER TABLE items ADD COLUMN name TEXT;")},
	}
	runner := NewRunner(db, fsys, DialectSQLite)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("applied %d migrations, want 2", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("current version = %d, want 2", version)
	}

	// Schema actually changed
	if _, err := db.Exec("INSERT INTO items (id, name) VALUES ('a', 'b')"); err != nil {
		t.Errorf("migrated schema rejected insert: %v", err)
	}

	// Re-running is a no-op
	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second run applied %d migrations, want 0", count)
	}
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}
	runner := NewRunner(db, fsys, DialectSQLite)

	count, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected the bad migration to fail")
	}
	if count != 1 {
		t.Errorf("applied %d migrations before failure, want 1", count)
	}

	// Version reflects the last successful migration
	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("current version = %d, want 1", version)
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
	}
	runner := NewRunner(db, fsys, DialectSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion failed on an up-to-date schema: %v", err)
	}

	// A database from a newer release must be rejected
	if err := runner.SetVersion(99); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected ValidateVersion to reject a newer schema version")
	}
}
