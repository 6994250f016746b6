package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/storage/local"
	"github.com/julianstephens/remindme/internal/storage/postgres"
	"github.com/julianstephens/remindme/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing store before initialization."`
	Source string `help:"Source store path or connection string to migrate data from."`
}

// NewProvider constructs the backend selected by cfg. It does not Init or
// Load the store.
func NewProvider(cfg storage.Config) storage.Provider {
	switch cfg.Backend {
	case storage.BackendPostgres:
		return postgres.New(cfg.ConnStr)
	case storage.BackendSQLite:
		return sqlite.NewStore(cfg.Path)
	default:
		return local.NewStore(cfg.Path)
	}
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete the existing store
	if c.Force {
		storePath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absStorePath, err := filepath.Abs(storePath)
			if err == nil {
				storePath = absStorePath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == storePath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", storePath)
			}
		}
		if _, err := os.Stat(storePath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized remindme storage at: %s\n", ctx.Store.GetConfigPath())

	// If source is provided, migrate data
	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, source string) error {
	cfg, err := storage.Resolve(source)
	if err != nil {
		return err
	}

	if cfg.Backend == storage.BackendPostgres {
		// Validate source connection string for embedded credentials
		if valid, err := postgres.ValidateConnString(cfg.ConnStr); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
	}

	sourceStore := NewProvider(cfg)
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer sourceStore.Close()

	// Migrate users (password hashes carry over unchanged)
	fmt.Println("  Migrating users...")
	users, err := sourceStore.AllUsers()
	if err != nil {
		return fmt.Errorf("failed to get users from source: %w", err)
	}
	for _, user := range users {
		if err := ctx.Store.ImportUser(user); err != nil {
			return fmt.Errorf("failed to import user %s: %w", user.ID, err)
		}
	}
	fmt.Printf("    Migrated %d users\n", len(users))

	// Migrate reminders
	fmt.Println("  Migrating reminders...")
	reminders, err := sourceStore.AllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders from source: %w", err)
	}
	for _, reminder := range reminders {
		if err := ctx.Store.ImportReminder(reminder); err != nil {
			return fmt.Errorf("failed to import reminder %s: %w", reminder.ID, err)
		}
	}
	fmt.Printf("    Migrated %d reminders\n", len(reminders))

	return nil
}
