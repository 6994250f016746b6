package system

import (
	"fmt"
	"io/fs"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/migration"
	"github.com/julianstephens/remindme/internal/storage/postgres"
	"github.com/julianstephens/remindme/internal/storage/sqlite"
	"github.com/julianstephens/remindme/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	// Load the store
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	defer ctx.Store.Close()

	runner, err := newRunnerFor(ctx)
	if err != nil {
		return err
	}
	if runner == nil {
		return fmt.Errorf("migrate command only supports database backends (sqlite, postgres)")
	}

	// Apply migrations
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}

// newRunnerFor builds a migration runner for the active backend, or nil for
// the local JSON store which has no schema to migrate.
func newRunnerFor(ctx *cli.Context) (*migration.Runner, error) {
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		db := store.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		subFS, err := fs.Sub(migrations.FS, "sqlite")
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
		}
		return migration.NewRunner(db, subFS, migration.DialectSQLite), nil
	case *postgres.Store:
		db := store.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		subFS, err := fs.Sub(migrations.FS, "postgres")
		if err != nil {
			return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
		}
		return migration.NewRunner(db, subFS, migration.DialectPostgres), nil
	default:
		return nil, nil
	}
}
