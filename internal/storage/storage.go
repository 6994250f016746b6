package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/remindme/internal/models"
)

// Expected failure conditions shared by every backend. Callers check these
// with errors.Is; anything else is a backend or deserialization failure
// wrapped with context.
var (
	// ErrAlreadyExists is returned by SignUp when the email is registered.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned by SignIn on a non-matching
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrNotAuthenticated is returned by mutations that require an active
	// session when none is established.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound is returned by UpdateReminder when the id does not exist
	// in the current user's reminder set.
	ErrNotFound = errors.New("reminder not found")
)

// Provider is the uniform contract over the interchangeable persistence
// backends. Every backend implements the same auth and reminder semantics;
// callers never branch on which backend is active.
//
// Reminder ordering is newest-created-first. DeleteReminder is idempotent:
// deleting an id that is already gone is not an error.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Auth
	SignUp(email, password string) (models.Session, error)
	SignIn(email, password string) (models.Session, error)
	SignOut() error
	// CurrentUser and CurrentSession return nil, nil when no principal is
	// established; they never fail on mere absence.
	CurrentUser() (*models.User, error)
	CurrentSession() (*models.Session, error)

	// Reminders
	ListReminders(userID string) ([]models.Reminder, error)
	CreateReminder(r models.Reminder) (models.Reminder, error)
	UpdateReminder(id string, upd models.ReminderUpdate) (models.Reminder, error)
	DeleteReminder(id string) error

	// Bulk retrieval and import for cross-backend migration. AllUsers
	// includes password hashes; AllReminders returns every user's records
	// newest-first. Import methods upsert records verbatim, preserving ids
	// and timestamps.
	AllUsers() ([]models.User, error)
	AllReminders() ([]models.Reminder, error)
	ImportUser(u models.User) error
	ImportReminder(r models.Reminder) error

	// Utils
	GetConfigPath() string
}

// Backend identifies one of the persistence implementations.
type Backend string

const (
	BackendLocal    Backend = "local"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Config is the explicit, injected backend selection. It is resolved once at
// startup; there is no process-wide mutable toggle.
type Config struct {
	Backend Backend
	// Path is the store file path for the local and sqlite backends.
	Path string
	// ConnStr is the PostgreSQL connection string for the postgres backend.
	ConnStr string
}

// Resolve maps a raw --storage value to a backend configuration:
// postgres:// or postgresql:// prefixes select the postgres backend, a .db
// or .sqlite suffix selects sqlite, anything else is treated as the path of
// the local JSON store. A leading ~ is expanded against the home directory.
func Resolve(raw string) (Config, error) {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return Config{Backend: BackendPostgres, ConnStr: raw}, nil
	}

	path, err := expandHome(raw)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return Config{Backend: BackendSQLite, Path: path}, nil
	default:
		return Config{Backend: BackendLocal, Path: path}, nil
	}
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection URL carries
// a password. Connection strings with embedded credentials are rejected at
// startup; credentials belong in the environment, .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, isSet := u.User.Password()
	return isSet
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
