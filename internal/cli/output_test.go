package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/agbru/fractaljoke/internal/ui"
)

func TestWriteJokes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want string
	}{
		{"two jokes", "first joke\nsecond joke", "first joke\nsecond joke\n"},
		{"bodies with trailing newline", "a\n\nb\n", "a\n\nb\n\n"},
		{"empty bodies", "\n", "\n\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := WriteJokes(&buf, tt.text); err != nil {
				t.Fatalf("WriteJokes failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteJokes wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteJokes_PropagatesError(t *testing.T) {
	t.Parallel()
	if err := WriteJokes(failingWriter{}, "joke"); err == nil {
		t.Error("expected the writer error to be returned")
	}
}

func TestDisplayImageSaved(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer
	DisplayImageSaved("out/fractal.png", &buf)
	if !strings.Contains(buf.String(), "Image saved to: out/fractal.png") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDisplayViewerSkipped(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer
	DisplayViewerSkipped("fractal.png", &buf)
	if !strings.Contains(buf.String(), "open fractal.png manually") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
