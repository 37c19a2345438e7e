package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/agbru/fractaljoke/internal/cli"
	"github.com/agbru/fractaljoke/internal/config"
	apperrors "github.com/agbru/fractaljoke/internal/errors"
	"github.com/agbru/fractaljoke/internal/logging"
	"github.com/agbru/fractaljoke/internal/metrics"
	"github.com/agbru/fractaljoke/internal/ui"
	"github.com/agbru/fractaljoke/internal/viewer"
)

// Application represents the fractaljoke application instance.
type Application struct {
	Config config.AppConfig
	// ErrWriter receives the joke text, logs and diagnostics.
	ErrWriter io.Writer
	Opener    viewer.Opener
	// HTTPClient is the base client; its transport is wrapped for metrics.
	HTTPClient *http.Client
	RunID      string

	programName string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithOpener replaces the platform image viewer.
func WithOpener(o viewer.Opener) AppOption {
	return func(a *Application) { a.Opener = o }
}

// WithHTTPClient sets the client used for joke requests.
func WithHTTPClient(c *http.Client) AppOption {
	return func(a *Application) { a.HTTPClient = c }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, programName: "fractaljoke"}
	for _, opt := range opts {
		opt(app)
	}
	if app.Opener == nil {
		app.Opener = viewer.NewSystemOpener()
	}
	if app.HTTPClient == nil {
		app.HTTPClient = &http.Client{}
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.RunID = ulid.Make().String()
	return app, nil
}

// Run executes the configured work and returns the process exit code.
// Human-facing progress and summaries go to out; jokes, logs and
// diagnostics go to ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	logger := a.newLogger()
	if a.Config.Quiet {
		out = io.Discard
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}

	recorder := metrics.NewRecorder(a.RunID, Version)
	logger.Debug("run started",
		logging.String("fractal", fmt.Sprint(a.Config.Fractal)),
		logging.String("fetch", fmt.Sprint(a.Config.Fetch)))

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	err := a.execute(ctx, out, recorder, logger)
	if a.Config.MetricsFile != "" {
		if werr := recorder.WriteTextfile(a.Config.MetricsFile); werr != nil {
			logger.Error("writing metrics textfile", werr, logging.String("path", a.Config.MetricsFile))
		}
	}
	if err != nil {
		err = a.asTimeout(err)
		logger.Error("run failed", err)
		return cli.HandleError(err, a.ErrWriter)
	}
	logger.Debug("run finished")
	return apperrors.ExitSuccess
}

func (a *Application) execute(ctx context.Context, out io.Writer, recorder *metrics.Recorder, logger logging.Logger) error {
	if a.Config.Fractal {
		if err := a.runRender(ctx, out, recorder, logger); err != nil {
			return err
		}
	}
	if a.Config.Fetch {
		if err := a.runFetch(ctx, out, recorder, logger); err != nil {
			return err
		}
	}
	return nil
}

// asTimeout reports a deadline hit by --timeout as a TimeoutError.
func (a *Application) asTimeout(err error) error {
	if a.Config.Timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "run", Limit: a.Config.Timeout}
	}
	return err
}

func (a *Application) newLogger() logging.Logger {
	level := a.logLevel()
	return logging.New(a.ErrWriter, logging.Options{
		Format:    logging.Format(a.Config.LogFormat),
		Level:     level,
		NoColor:   a.Config.NoColor || !ui.IsColorEnabled(),
		Component: "app",
		RunID:     a.RunID,
	})
}

// logLevel resolves --log-level; --verbose lowers it to at least debug.
func (a *Application) logLevel() zerolog.Level {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = logging.DefaultLevel
	}
	if a.Config.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	return level
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, "fractaljoke"); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// elapsed rounds d for log fields.
func elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}
