// Package ui provides theme and color support for the command-line output.
// It defines color schemes and ANSI escape code accessors so the presenter
// and the error handler share one notion of "colors on or off".
package ui
