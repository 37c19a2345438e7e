//go:generate mockgen -source=viewer.go -destination=mocks/mock_viewer.go -package=mocks

// Package viewer hands a saved image to the platform's default viewer.
package viewer

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

// Opener opens a file for display.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// CommandRunner runs an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// SystemOpener opens files with the desktop's registered handler:
// "open" on macOS, ShellExecute on Windows and "xdg-open" elsewhere.
type SystemOpener struct {
	// GOOS selects the launcher; empty means runtime.GOOS.
	GOOS string
	// LookPath and Run default to exec.LookPath and exec.CommandContext.
	LookPath func(file string) (string, error)
	Run      CommandRunner
}

// NewSystemOpener returns an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

// Command returns the launcher used on goos.
func Command(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32"
	default:
		return "xdg-open"
	}
}

// Open launches the viewer on path and waits for the launcher to exit.
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" && runtime.GOOS == "windows" && o.Run == nil {
		return openNative(path)
	}

	name := Command(goos)
	args := []string{path}
	if goos == "windows" {
		args = []string{"url.dll,FileProtocolHandler", path}
	}

	lookPath := o.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(name); err != nil {
		return apperrors.ViewerError{Command: name, Path: path, Cause: err}
	}

	run := o.Run
	if run == nil {
		run = runCommand
	}
	if out, err := run(ctx, name, args...); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			err = apperrors.WrapError(err, "%s", msg)
		}
		return apperrors.ViewerError{Command: name, Path: path, Cause: err}
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
