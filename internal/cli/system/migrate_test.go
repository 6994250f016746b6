package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/storage/local"
	"github.com/julianstephens/remindme/internal/storage/sqlite"
)

func TestMigrateCmdRejectsLocalStore(t *testing.T) {
	s := local.NewStore(filepath.Join(t.TempDir(), "remindme.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	err := (&MigrateCmd{}).Run(&cli.Context{Store: s})
	if err == nil {
		t.Error("expected migrate to reject the JSON store")
	}
}

func TestMigrateCmdUpToDate(t *testing.T) {
	s := sqlite.NewStore(filepath.Join(t.TempDir(), "remindme.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Init already applied every migration; a second run is a no-op
	if err := (&MigrateCmd{}).Run(&cli.Context{Store: s}); err != nil {
		t.Errorf("MigrateCmd.Run failed on an up-to-date store: %v", err)
	}
}
