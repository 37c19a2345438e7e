package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
	"github.com/agbru/fractaljoke/internal/format"
	"github.com/agbru/fractaljoke/internal/metrics"
	"github.com/agbru/fractaljoke/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// RenderSummary is what the summary panel reports about a finished render.
type RenderSummary struct {
	Path       string
	Format     string
	Width      int
	Height     int
	C          complex128
	Iterations uint64
	Bounded    int
	Duration   string
}

// FormatRenderSummary renders s as a bordered panel.
func FormatRenderSummary(s RenderSummary) string {
	rows := [][2]string{
		{"Image", s.Path},
		{"Format", strings.ToUpper(s.Format)},
		{"Size", fmt.Sprintf("%dx%d", s.Width, s.Height)},
		{"Constant", fmt.Sprintf("%g%+gi", real(s.C), imag(s.C))},
		{"Iterations", format.FormatNumberString(fmt.Sprint(s.Iterations))},
		{"Bounded pixels", format.FormatNumberString(fmt.Sprint(s.Bounded))},
		{"Render time", s.Duration},
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-15s %s", r[0]+":", r[1])
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if ui.IsColorEnabled() {
		style = style.BorderForeground(lipgloss.Color("39"))
	}
	return style.Render(b.String())
}

// DisplayRenderSummary prints the render summary panel.
func DisplayRenderSummary(s RenderSummary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Render Summary ---\n%s\n", FormatRenderSummary(s))
}

// DisplayMemoryStats shows memory statistics at the end of a verbose run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}

// HandleError prints err with the active theme and returns its exit code.
func HandleError(err error, out io.Writer) int {
	return apperrors.HandleError(err, out, CLIColorProvider{})
}
