package sqlite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/storage/storagetest"
)

func exampleReminder(userID string) models.Reminder {
	return models.Reminder{
		UserID:   userID,
		Title:    "Check the oven",
		RemindAt: "2030-01-02T09:00:00Z",
	}
}

func openStore(t *testing.T) storage.Provider {
	t.Helper()
	path := filepath.Join(t.TempDir(), "remindme.db")
	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	storagetest.Run(t, openStore)
}

func TestLoadNotInitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := s.Load()
	if err == nil {
		t.Fatal("expected Load of absent store to fail")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Load error = %v, want a not-initialized hint", err)
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remindme.db")
	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	session, err := s.SignUp("ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if _, err := s.CreateReminder(exampleReminder(session.User.ID)); err != nil {
		t.Fatalf("CreateReminder failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	// The session pointer file next to the database survives the reopen
	user, err := reopened.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user == nil || user.Email != "ada@example.com" {
		t.Errorf("CurrentUser after reopen = %+v, want ada@example.com", user)
	}

	list, err := reopened.ListReminders(session.User.ID)
	if err != nil {
		t.Fatalf("ListReminders failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d reminders after reopen, want 1", len(list))
	}
}

func TestStaleSessionPointer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remindme.db")
	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	if _, err := s.SignUp("ada@example.com", "correct horse"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	// Drop the session row server-side; the token file now dangles
	if _, err := s.GetDB().Exec("DELETE FROM sessions"); err != nil {
		t.Fatal(err)
	}

	session, err := s.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if session != nil {
		t.Errorf("CurrentSession with stale pointer = %+v, want nil", session)
	}

	user, err := s.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user != nil {
		t.Errorf("CurrentUser with stale pointer = %+v, want nil", user)
	}
}

func TestMigrationsRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remindme.db")
	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	var version int
	if err := s.GetDB().QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version < 1 {
		t.Errorf("schema version = %d, want >= 1", version)
	}
}
