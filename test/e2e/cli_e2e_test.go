package e2e

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/fractaljoke into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "fractaljoke"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs with the package directory as CWD.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fractaljoke")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fractaljoke: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	binPath := buildBinary(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "What do you call a fish wearing a bowtie? Sofishticated.")
	}))
	defer srv.Close()

	imagePath := filepath.Join(t.TempDir(), "fractal.png")

	tests := []struct {
		name       string
		args       []string
		wantStdout string // substring match (case-insensitive)
		wantStderr string
		wantCode   int
	}{
		{
			name:       "Fetch Jokes",
			args:       []string{"--url", srv.URL, "-q"},
			wantStderr: "Sofishticated.\nWhat do you call",
			wantCode:   0,
		},
		{
			name:       "Render Fractal",
			args:       []string{"--fractal", "--fetch=false", "--open=false", "-o", imagePath, "--width", "120", "--height", "120"},
			wantStdout: "Image saved to",
			wantCode:   0,
		},
		{
			name:       "Help",
			args:       []string{"--help"},
			wantStderr: "usage",
			wantCode:   0,
		},
		{
			name:       "Version Flag",
			args:       []string{"--version"},
			wantStdout: "fractaljoke",
			wantCode:   0,
		},
		{
			name:       "Completion",
			args:       []string{"--completion", "bash"},
			wantStdout: "complete -F",
			wantCode:   0,
		},
		{
			name:       "Nothing To Do",
			args:       []string{"--fetch=false"},
			wantStderr: "Configuration error",
			wantCode:   4,
		},
		{
			name:       "Unknown Image Format",
			args:       []string{"--fractal", "-o", "fractal.webp"},
			wantStderr: "Configuration error",
			wantCode:   4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--no-such-flag"},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("command did not run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, stdout.String(), stderr.String())
			}

			if tt.wantStdout != "" && !strings.Contains(strings.ToLower(stdout.String()), strings.ToLower(tt.wantStdout)) {
				t.Errorf("stdout missing %q\nGot:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(strings.ToLower(stderr.String()), strings.ToLower(tt.wantStderr)) {
				t.Errorf("stderr missing %q\nGot:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}

	if _, err := os.Stat(imagePath); err != nil {
		t.Errorf("render case should have written %s: %v", imagePath, err)
	}
}
