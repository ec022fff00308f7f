package cli

import (
	"strings"
	"testing"
)

func TestRun_NoArgs(t *testing.T) {
	err := Run(nil)
	if err == nil {
		t.Fatal("expected usage error")
	}
	if !strings.Contains(err.Error(), "usage:") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	err := Run([]string{"frobnicate"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error should name the command, got: %v", err)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := Run([]string{"qrcode", "-no-such-flag"}); err == nil {
		t.Fatal("expected flag parse error")
	}
}
