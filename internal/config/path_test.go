package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "absolute untouched", in: "/tmp/summit.db", want: "/tmp/summit.db"},
		{name: "tilde prefix", in: "~/data/summit.db", want: filepath.Join(home, "data/summit.db")},
		{name: "bare tilde", in: "~", want: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandPath_EnvVars(t *testing.T) {
	t.Setenv("SUMMIT_TEST_DIR", "/var/data")
	if got := ExpandPath("$SUMMIT_TEST_DIR/summit.db"); got != "/var/data/summit.db" {
		t.Errorf("ExpandPath env = %q", got)
	}
}

func TestDatabasePath_Default(t *testing.T) {
	got := DatabasePath("")
	if !strings.HasSuffix(got, filepath.Join("summit", "summit.db")) {
		t.Errorf("default database path = %q", got)
	}

	if got := DatabasePath("/tmp/other.db"); got != "/tmp/other.db" {
		t.Errorf("configured database path = %q", got)
	}
}
