package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/remindme/internal/models"
)

const minPasswordLength = 8

// ValidateEmail checks that an email address is plausible enough to register.
// Full RFC 5322 parsing is deliberately out of scope; the store's unique
// index is the real gatekeeper.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email must not be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address: %s", email)
	}
	if strings.ContainsAny(email, " \t") {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateTitle checks that a reminder title is non-empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	return nil
}

// ValidateRemindAt checks that a remind-at value is a parseable RFC3339
// timestamp.
func ValidateRemindAt(remindAt string) error {
	if _, err := models.ParseRemindAt(remindAt); err != nil {
		return fmt.Errorf("invalid timestamp (expected RFC3339): %w", err)
	}
	return nil
}

// ValidatePriority checks that a priority is one of the known levels.
func ValidatePriority(priority string) error {
	if !models.ValidPriority(models.Priority(priority)) {
		return fmt.Errorf("priority must be one of low, medium, high")
	}
	return nil
}

// ValidateReminder checks a full reminder record before it is written.
func ValidateReminder(r models.Reminder) error {
	if err := ValidateTitle(r.Title); err != nil {
		return err
	}
	if err := ValidateRemindAt(r.RemindAt); err != nil {
		return err
	}
	if r.Priority != "" {
		if err := ValidatePriority(string(r.Priority)); err != nil {
			return err
		}
	}
	if r.Location != "" {
		if _, err := models.ParseLocation(r.Location); err != nil {
			return fmt.Errorf("invalid location: %w", err)
		}
	}
	return nil
}
