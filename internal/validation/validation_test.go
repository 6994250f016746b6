package validation

import (
	"testing"

	"github.com/julianstephens/remindme/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email     string
		wantError bool
	}{
		{"ada@example.com", false},
		{"a@b", false},
		{"", true},
		{"   ", true},
		{"no-at-sign", true},
		{"@example.com", true},
		{"ada@", true},
		{"ada lovelace@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateEmail(%q) error = %v, wantError %v", tt.email, err, tt.wantError)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("ValidatePassword rejected a valid password: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("ValidatePassword accepted a too-short password")
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Buy milk"); err != nil {
		t.Errorf("ValidateTitle rejected a valid title: %v", err)
	}
	for _, bad := range []string{"", "   ", "\t"} {
		if err := ValidateTitle(bad); err == nil {
			t.Errorf("ValidateTitle(%q) accepted an empty title", bad)
		}
	}
}

func TestValidateReminder(t *testing.T) {
	valid := models.Reminder{
		UserID:   "u1",
		Title:    "Buy milk",
		RemindAt: "2030-01-02T09:00:00Z",
		Priority: models.PriorityHigh,
	}

	if err := ValidateReminder(valid); err != nil {
		t.Errorf("ValidateReminder rejected a valid reminder: %v", err)
	}

	t.Run("empty priority is allowed", func(t *testing.T) {
		r := valid
		r.Priority = ""
		if err := ValidateReminder(r); err != nil {
			t.Errorf("empty priority should pass (the store assigns the default): %v", err)
		}
	})

	t.Run("bad priority", func(t *testing.T) {
		r := valid
		r.Priority = "urgent"
		if err := ValidateReminder(r); err == nil {
			t.Error("expected error for unknown priority")
		}
	})

	t.Run("bad remind_at", func(t *testing.T) {
		r := valid
		r.RemindAt = "next tuesday"
		if err := ValidateReminder(r); err == nil {
			t.Error("expected error for unparseable remind_at")
		}
	})

	t.Run("bad location blob", func(t *testing.T) {
		r := valid
		r.Location = "{broken"
		if err := ValidateReminder(r); err == nil {
			t.Error("expected error for invalid location blob")
		}
	})

	t.Run("valid location blob", func(t *testing.T) {
		r := valid
		r.Location = `{"address":"somewhere","lat":1,"lng":2}`
		if err := ValidateReminder(r); err != nil {
			t.Errorf("valid location rejected: %v", err)
		}
	})
}
