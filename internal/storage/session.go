package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/remindme/internal/constants"
)

// NewAccessToken generates an opaque session token.
func NewAccessToken() (string, error) {
	buf := make([]byte, constants.AccessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// The database backed stores keep their session rows server-side but the
// "currently authenticated principal" is a property of this client context,
// so the active token is pinned in a small file next to the store.

// WriteSessionToken persists the current session token pointer.
func WriteSessionToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	return nil
}

// ReadSessionToken returns the pinned session token, or "" when none is set.
func ReadSessionToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearSessionToken removes the token pointer. Clearing an absent pointer is
// not an error.
func ClearSessionToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
