package storage

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/remindme/internal/constants"
)

func TestNewAccessToken(t *testing.T) {
	a, err := NewAccessToken()
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if len(a) != constants.AccessTokenBytes*2 {
		t.Errorf("token length = %d, want %d hex chars", len(a), constants.AccessTokenBytes*2)
	}

	b, err := NewAccessToken()
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if a == b {
		t.Error("two generated tokens should not collide")
	}
}

func TestSessionTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	// Absent pointer reads as empty, not as an error
	token, err := ReadSessionToken(path)
	if err != nil {
		t.Fatalf("ReadSessionToken failed: %v", err)
	}
	if token != "" {
		t.Errorf("token from absent file = %q, want empty", token)
	}

	if err := WriteSessionToken(path, "abc123"); err != nil {
		t.Fatalf("WriteSessionToken failed: %v", err)
	}
	token, err = ReadSessionToken(path)
	if err != nil {
		t.Fatalf("ReadSessionToken failed: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want abc123", token)
	}

	if err := ClearSessionToken(path); err != nil {
		t.Fatalf("ClearSessionToken failed: %v", err)
	}
	token, err = ReadSessionToken(path)
	if err != nil {
		t.Fatalf("ReadSessionToken failed: %v", err)
	}
	if token != "" {
		t.Errorf("token after clear = %q, want empty", token)
	}

	// Clearing twice is fine
	if err := ClearSessionToken(path); err != nil {
		t.Errorf("second ClearSessionToken failed: %v", err)
	}
}

func TestWriteSessionTokenCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session")
	if err := WriteSessionToken(path, "tok"); err != nil {
		t.Fatalf("WriteSessionToken failed: %v", err)
	}
	token, err := ReadSessionToken(path)
	if err != nil || token != "tok" {
		t.Errorf("ReadSessionToken = %q, %v; want tok, nil", token, err)
	}
}
