package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// RequireUser returns the currently authenticated user or an error telling
// the caller how to establish one.
func (c *Context) RequireUser() (*models.User, error) {
	user, err := c.Store.CurrentUser()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: run 'remindme login' or 'remindme signup' first", storage.ErrNotAuthenticated)
	}
	return user, nil
}

// FormatRemindAt renders a reminder timestamp for display, falling back to
// the raw string if it does not parse.
func FormatRemindAt(remindAt string) string {
	t, err := time.Parse(time.RFC3339, remindAt)
	if err != nil {
		return remindAt
	}
	return t.Local().Format("Mon Jan 2 2006 15:04")
}
