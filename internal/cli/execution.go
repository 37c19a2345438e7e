package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fractaljoke/internal/config"
	"github.com/agbru/fractaljoke/internal/ui"
)

// PrintExecutionConfig displays what the run is about to do.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.Fractal {
		fmt.Fprintf(out, "Rendering a %s%dx%d%s Julia set for C = %s%g%+gi%s into %s%s%s.\n",
			ui.ColorMagenta(), cfg.Width, cfg.Height, ui.ColorReset(),
			ui.ColorMagenta(), cfg.CReal, cfg.CImag, ui.ColorReset(),
			ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
	}
	if cfg.Fetch {
		fmt.Fprintf(out, "Fetching two jokes concurrently from %s%s%s.\n",
			ui.ColorCyan(), cfg.URL, ui.ColorReset())
	}
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Timeout: %s%s%s. Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorYellow(), timeout, ui.ColorReset(),
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
