// Package cli holds the terminal presentation of the program.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayRenderSummary], [DisplayImageSaved], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatRenderSummary], [FormatJokes].
//
//   - Write* functions emit program data rather than decoration.
//     Examples: [WriteJokes].
package cli

import (
	"fmt"
	"io"

	"github.com/agbru/fractaljoke/internal/ui"
)

// FormatJokes returns the line printed for the joined joke text: the text
// itself plus one newline, whatever the bodies already end with.
func FormatJokes(text string) string {
	return text + "\n"
}

// WriteJokes writes the joined joke text to w, which is standard error in
// the running program.
func WriteJokes(w io.Writer, text string) error {
	_, err := io.WriteString(w, FormatJokes(text))
	return err
}

// DisplayImageSaved confirms where the image was written.
func DisplayImageSaved(path string, out io.Writer) {
	fmt.Fprintf(out, "\n%s✓ Image saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

// DisplayViewerSkipped tells the user the image was left unopened.
func DisplayViewerSkipped(path string, out io.Writer) {
	fmt.Fprintf(out, "%sViewer disabled, open %s manually.%s\n", ui.ColorYellow(), path, ui.ColorReset())
}
