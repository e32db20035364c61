//go:build !windows

package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccmon-tools/ccmon/internal/store"
)

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "claude")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	info, err := Command("claude", store.SavedSession{ID: "abc-123", Directory: "/tmp/work"})
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if info.Command != bin {
		t.Errorf("Command = %q, want %q", info.Command, bin)
	}
	want := []string{"claude", "--resume", "abc-123"}
	if len(info.Args) != len(want) {
		t.Fatalf("Args = %v, want %v", info.Args, want)
	}
	for i := range want {
		if info.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, info.Args[i], want[i])
		}
	}
	if info.Dir != "/tmp/work" {
		t.Errorf("Dir = %q, want /tmp/work", info.Dir)
	}
}

func TestCommand_NotOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := Command("claude", store.SavedSession{ID: "abc"}); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
