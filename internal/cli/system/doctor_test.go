package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage/local"
	"github.com/julianstephens/remindme/internal/storage/sqlite"
)

func newLocalContext(t *testing.T) *cli.Context {
	t.Helper()
	s := local.NewStore(filepath.Join(t.TempDir(), "remindme.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return &cli.Context{Store: s}
}

func TestCheckClockTimezone(t *testing.T) {
	if err := checkClockTimezone(); err != nil {
		t.Errorf("checkClockTimezone failed on a sane clock: %v", err)
	}
}

func TestCheckValidationCleanStore(t *testing.T) {
	ctx := newLocalContext(t)
	session, err := ctx.Store.SignUp("ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if _, err := ctx.Store.CreateReminder(models.Reminder{
		UserID:   session.User.ID,
		Title:    "Healthy",
		RemindAt: "2030-01-02T09:00:00Z",
	}); err != nil {
		t.Fatalf("CreateReminder failed: %v", err)
	}

	if err := checkValidation(ctx); err != nil {
		t.Errorf("checkValidation failed on a clean store: %v", err)
	}
}

func TestCheckValidationOrphanedReminder(t *testing.T) {
	ctx := newLocalContext(t)

	// Import a reminder whose owner does not exist
	if err := ctx.Store.ImportReminder(models.Reminder{
		ID:        "orphan",
		UserID:    "no-such-user",
		Title:     "Orphan",
		RemindAt:  "2030-01-02T09:00:00Z",
		CreatedAt: "2020-01-01T00:00:00Z",
		UpdatedAt: "2020-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("ImportReminder failed: %v", err)
	}

	if err := checkValidation(ctx); err == nil {
		t.Error("expected checkValidation to flag an orphaned reminder")
	}
}

func TestSchemaChecksSkipLocalStore(t *testing.T) {
	ctx := newLocalContext(t)

	// The JSON store has no schema version or migrations to check
	if err := checkSchemaVersion(ctx); err != nil {
		t.Errorf("checkSchemaVersion on local store = %v, want nil", err)
	}
	if err := checkMigrationsComplete(ctx); err != nil {
		t.Errorf("checkMigrationsComplete on local store = %v, want nil", err)
	}
}

func TestSchemaChecksOnSQLite(t *testing.T) {
	s := sqlite.NewStore(filepath.Join(t.TempDir(), "remindme.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()
	ctx := &cli.Context{Store: s}

	if err := checkSchemaVersion(ctx); err != nil {
		t.Errorf("checkSchemaVersion failed: %v", err)
	}
	if err := checkMigrationsComplete(ctx); err != nil {
		t.Errorf("checkMigrationsComplete failed: %v", err)
	}
	if err := checkStoreReachable(ctx); err != nil {
		t.Errorf("checkStoreReachable failed: %v", err)
	}
}
