package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/cli/auth"
	"github.com/julianstephens/remindme/internal/cli/reminders"
	"github.com/julianstephens/remindme/internal/cli/system"
	"github.com/julianstephens/remindme/internal/constants"
	apperrors "github.com/julianstephens/remindme/internal/errors"
	"github.com/julianstephens/remindme/internal/keyring"
	"github.com/julianstephens/remindme/internal/logger"
	"github.com/julianstephens/remindme/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Storage string `help:"Store path or PostgreSQL connection string. A .db/.sqlite suffix selects the sqlite backend, a postgres:// prefix the remote backend, anything else the local JSON store. PostgreSQL credentials must NOT be embedded in the connection string; use environment variables, .pgpass, or the OS keyring instead." env:"REMINDME_STORAGE" default:"~/.config/remindme/remindme.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize remindme storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`

	Signup auth.SignupCmd `cmd:"" help:"Create an account and sign in."`
	Login  auth.LoginCmd  `cmd:"" help:"Sign in to an existing account."`
	Logout auth.LogoutCmd `cmd:"" help:"Sign out of the current session."`
	Whoami auth.WhoamiCmd `cmd:"" help:"Show the currently signed-in user."`

	Add    reminders.AddCmd    `cmd:"" help:"Add a new reminder."`
	List   reminders.ListCmd   `cmd:"" help:"List reminders."`
	Edit   reminders.EditCmd   `cmd:"" help:"Edit an existing reminder."`
	Done   reminders.DoneCmd   `cmd:"" help:"Mark a reminder as completed."`
	Undone reminders.UndoneCmd `cmd:"" help:"Mark a reminder as not completed."`
	Delete reminders.DeleteCmd `cmd:"" help:"Delete a reminder."`

	Config struct {
		SetConnection   system.ConfigSetCmd    `cmd:"" help:"Store the remote connection string in the OS keyring."`
		ClearConnection system.ConfigClearCmd  `cmd:"" help:"Remove the remote connection string from the OS keyring."`
		Show            system.ConfigShowCmd   `cmd:"" help:"Show the stored connection string (password masked)."`
		Status          system.ConfigStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the remote backend connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Reminders with interchangeable local and remote storage"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := resolveStorage(CLI.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Backend == storage.BackendPostgres && storage.HasEmbeddedCredentials(cfg.ConnStr) {
		fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
		fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
		fmt.Fprintf(os.Stderr, "       1. OS keyring:    remindme config set-connection \"postgresql://user@host:5432/remindme\"\n")
		fmt.Fprintf(os.Stderr, "       2. Environment:   export REMINDME_DB_CONNECTION=\"postgresql://user@host:5432/remindme\"\n")
		fmt.Fprintf(os.Stderr, "       3. .pgpass file:  Use a connection string without a password\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(cfg),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	store := system.NewProvider(cfg)
	appCtx := &cli.Context{Store: store}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		_ = store.Close()
		apperrors.Fatal(err)
	}
}

// resolveStorage turns the --storage flag into a backend config. When the
// flag is left at its default, a connection string from the
// REMINDME_DB_CONNECTION environment variable or the OS keyring selects the
// remote backend instead.
func resolveStorage(raw string) (storage.Config, error) {
	if raw == constants.DefaultStoragePath {
		if connStr := os.Getenv("REMINDME_DB_CONNECTION"); connStr != "" {
			return storage.Resolve(connStr)
		}
		if connStr, err := keyring.GetConnectionString(); err == nil {
			return storage.Resolve(connStr)
		} else if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
			return storage.Config{}, err
		}
	}
	return storage.Resolve(raw)
}

// logDir picks a directory for log output: next to file-backed stores, the
// user config dir for the remote backend.
func logDir(cfg storage.Config) string {
	if cfg.Backend == storage.BackendPostgres {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "."
		}
		return filepath.Join(dir, constants.AppName)
	}
	return filepath.Dir(cfg.Path)
}
