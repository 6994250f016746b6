package auth

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/storage/local"
)

func TestSignupCmdValidate(t *testing.T) {
	tests := []struct {
		name      string
		cmd       SignupCmd
		wantError bool
	}{
		{
			name: "valid",
			cmd:  SignupCmd{Email: "ada@example.com", Password: "correct horse"},
		},
		{
			name:      "bad email",
			cmd:       SignupCmd{Email: "not-an-email", Password: "correct horse"},
			wantError: true,
		},
		{
			name:      "short password",
			cmd:       SignupCmd{Email: "ada@example.com", Password: "short"},
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

func TestAuthFlow(t *testing.T) {
	s := local.NewStore(filepath.Join(t.TempDir(), "remindme.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	ctx := &cli.Context{Store: s}

	signup := &SignupCmd{Email: "ada@example.com", Password: "correct horse"}
	if err := signup.Run(ctx); err != nil {
		t.Fatalf("SignupCmd.Run failed: %v", err)
	}

	// Whoami sees the signed-in user
	if err := (&WhoamiCmd{}).Run(ctx); err != nil {
		t.Errorf("WhoamiCmd.Run failed: %v", err)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("LogoutCmd.Run failed: %v", err)
	}

	login := &LoginCmd{Email: "ada@example.com", Password: "correct horse"}
	if err := login.Run(ctx); err != nil {
		t.Errorf("LoginCmd.Run failed: %v", err)
	}

	wrong := &LoginCmd{Email: "ada@example.com", Password: "wrong password"}
	if err := wrong.Run(ctx); err == nil {
		t.Error("expected login with a wrong password to fail")
	}
}
