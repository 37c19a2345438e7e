// Package logging provides the structured logging interface used by the
// renderer, the joke fetcher and the application entry point. It wraps
// zerolog behind a small Logger interface.
package logging
