package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(fmt.Errorf("boom")); got != "Error: boom" {
		t.Errorf("Format = %q, want %q", got, "Error: boom")
	}
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed after %d tries", 3)
	if got != "Error: failed after 3 tries" {
		t.Errorf("Formatf = %q, want %q", got, "Error: failed after 3 tries")
	}
}
