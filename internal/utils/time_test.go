package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
		want     string
	}{
		{"empty is local", "", false, time.Local.String()},
		{"Local keyword", "Local", false, time.Local.String()},
		{"UTC", "UTC", false, "UTC"},
		{"IANA name", "Europe/London", false, "Europe/London"},
		{"invalid", "Mars/Olympus_Mons", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.timezone)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if loc.String() != tt.want {
				t.Errorf("got %s, want %s", loc, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandHome("~/.config/habitrack/habitrack.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(home, ".config", "habitrack", "habitrack.db")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}
