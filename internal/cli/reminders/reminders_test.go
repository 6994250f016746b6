package reminders

import "testing"

func TestAddCmdValidate(t *testing.T) {
	tests := []struct {
		name      string
		cmd       AddCmd
		wantError bool
	}{
		{
			name: "valid",
			cmd:  AddCmd{Title: "Buy milk", At: "2030-01-02T09:00:00Z", Priority: "high"},
		},
		{
			name:      "empty title",
			cmd:       AddCmd{Title: "", At: "2030-01-02T09:00:00Z", Priority: "medium"},
			wantError: true,
		},
		{
			name:      "bad timestamp",
			cmd:       AddCmd{Title: "Buy milk", At: "tomorrow", Priority: "medium"},
			wantError: true,
		},
		{
			name:      "bad priority",
			cmd:       AddCmd{Title: "Buy milk", At: "2030-01-02T09:00:00Z", Priority: "urgent"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestEditCmdValidate(t *testing.T) {
	title := "Renamed"
	emptyTitle := ""
	badAt := "yesterday"
	goodAt := "2030-01-02T09:00:00Z"
	badPriority := "urgent"

	tests := []struct {
		name      string
		cmd       EditCmd
		wantError bool
	}{
		{
			name:      "no fields set",
			cmd:       EditCmd{ID: "r1"},
			wantError: true,
		},
		{
			name: "title only",
			cmd:  EditCmd{ID: "r1", Title: &title},
		},
		{
			name:      "empty title",
			cmd:       EditCmd{ID: "r1", Title: &emptyTitle},
			wantError: true,
		},
		{
			name: "valid timestamp",
			cmd:  EditCmd{ID: "r1", At: &goodAt},
		},
		{
			name:      "bad timestamp",
			cmd:       EditCmd{ID: "r1", At: &badAt},
			wantError: true,
		},
		{
			name:      "bad priority",
			cmd:       EditCmd{ID: "r1", Priority: &badPriority},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestListCmdValidate(t *testing.T) {
	if err := (&ListCmd{Pending: true, Done: true}).Validate(); err == nil {
		t.Error("expected --pending with --done to be rejected")
	}
	if err := (&ListCmd{Pending: true}).Validate(); err != nil {
		t.Errorf("Validate() failed for --pending alone: %v", err)
	}
	if err := (&ListCmd{}).Validate(); err != nil {
		t.Errorf("Validate() failed with no filters: %v", err)
	}
}
