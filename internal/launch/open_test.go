package launch

import (
	"path/filepath"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantErr  bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"freebsd", "xdg-open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := command(tt.goos, "/tmp/t.xlsx")
			if (err != nil) != tt.wantErr {
				t.Fatalf("command(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if name != tt.wantName {
				t.Errorf("command(%q) name = %q, want %q", tt.goos, name, tt.wantName)
			}
			if !tt.wantErr && args[len(args)-1] != "/tmp/t.xlsx" {
				t.Errorf("command(%q) args = %v, want path last", tt.goos, args)
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	if err := Open(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
