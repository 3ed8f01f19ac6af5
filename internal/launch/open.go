// Package launch hands a file to the desktop's default application.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// command returns the opener invocation for goos.
func command(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// Open starts the default spreadsheet application on path without waiting
// for it to exit.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("launch.Open: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("launch.Open: %w", err)
	}
	name, args, err := command(runtime.GOOS, abs)
	if err != nil {
		return fmt.Errorf("launch.Open: %w", err)
	}
	return exec.Command(name, args...).Start()
}
