package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/storage/local"
)

func TestRequireUser(t *testing.T) {
	s := local.NewStore(filepath.Join(t.TempDir(), "remindme.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	ctx := &Context{Store: s}

	// No session yet
	_, err := ctx.RequireUser()
	if !errors.Is(err, storage.ErrNotAuthenticated) {
		t.Errorf("RequireUser without session error = %v, want ErrNotAuthenticated", err)
	}

	if _, err := s.SignUp("ada@example.com", "correct horse"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	user, err := ctx.RequireUser()
	if err != nil {
		t.Fatalf("RequireUser failed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("RequireUser user = %+v, want ada@example.com", user)
	}
}

func TestFormatRemindAt(t *testing.T) {
	// Unparseable input falls back to the raw string
	if got := FormatRemindAt("whenever"); got != "whenever" {
		t.Errorf("FormatRemindAt fallback = %q, want the input back", got)
	}

	// Parseable input is rendered, not echoed
	got := FormatRemindAt("2030-01-02T09:00:00Z")
	if got == "2030-01-02T09:00:00Z" || got == "" {
		t.Errorf("FormatRemindAt = %q, want a rendered time", got)
	}
}
