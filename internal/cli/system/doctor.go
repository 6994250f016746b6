package system

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/constants"
	"github.com/julianstephens/remindme/internal/keyring"
	"github.com/julianstephens/remindme/internal/storage/postgres"
	"github.com/julianstephens/remindme/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: Store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: Schema version valid (only if store is reachable)
	if storeReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (store not reachable)\n")
	}

	// Check 3: Migrations complete (only if store is reachable)
	if storeReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (store not reachable)\n")
	}

	// Check 4: Data validation (only if store is reachable)
	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	}

	// Check 5: Keyring availability (warning only)
	if err := checkKeyringAvailable(); err != nil {
		fmt.Printf("⚠ Keyring available: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Keyring available: OK\n")
	}

	// Check 6: Concurrent writers (warning only)
	if err := checkConcurrentWriters(); err != nil {
		fmt.Printf("⚠ Concurrent writers: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent writers: OK\n")
	}

	// Check 7: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if db, ok := dbOf(ctx); ok {
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := newRunnerFor(ctx)
	if err != nil {
		return err
	}
	if runner == nil {
		// JSON store doesn't have a schema version
		return nil
	}

	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := newRunnerFor(ctx)
	if err != nil {
		return err
	}
	if runner == nil {
		// JSON store doesn't have migrations
		return nil
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}

	return nil
}

func checkValidation(ctx *cli.Context) error {
	users, err := ctx.Store.AllUsers()
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}

	// Basic validation: check for duplicate user emails
	emails := make(map[string]bool)
	for _, user := range users {
		if emails[user.Email] {
			return fmt.Errorf("duplicate user email found: %s", user.Email)
		}
		emails[user.Email] = true
	}

	reminders, err := ctx.Store.AllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	// Check for duplicate reminder IDs and orphaned owner references
	userIDs := make(map[string]bool)
	for _, user := range users {
		userIDs[user.ID] = true
	}
	reminderIDs := make(map[string]bool)
	for _, reminder := range reminders {
		if reminderIDs[reminder.ID] {
			return fmt.Errorf("duplicate reminder ID found: %s", reminder.ID)
		}
		reminderIDs[reminder.ID] = true
		if !userIDs[reminder.UserID] {
			return fmt.Errorf("reminder %s references non-existent user %s", reminder.ID, reminder.UserID)
		}
	}

	return nil
}

func checkKeyringAvailable() error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("system keyring is not available - connection strings must be passed via %s_CONN environment variable", strings.ToUpper(constants.AppName))
	}
	return nil
}

// checkConcurrentWriters looks for other running remindme processes. The
// local JSON store rewrites the whole file on save, so a second writer can
// clobber changes.
func checkConcurrentWriters() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	count := 0
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			count++
		}
	}

	if count > 0 {
		return fmt.Errorf("found %d other running %s process(es) - concurrent writes to the local store may lose data", count, constants.AppName)
	}
	return nil
}

func checkClockTimezone() error {
	// Check if system time is reasonable
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

// dbOf returns the SQL connection for database backends, or false for the
// local JSON store.
func dbOf(ctx *cli.Context) (*sql.DB, bool) {
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		return store.GetDB(), store.GetDB() != nil
	case *postgres.Store:
		return store.GetDB(), store.GetDB() != nil
	default:
		return nil, false
	}
}
