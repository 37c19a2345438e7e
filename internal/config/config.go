// Package config parses command-line flags and FRACTALJOKE_* environment
// variables into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"time"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
	"github.com/agbru/fractaljoke/internal/fractal"
	"github.com/agbru/fractaljoke/internal/imagefile"
	"github.com/agbru/fractaljoke/internal/logging"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "FRACTALJOKE_"

const (
	// DefaultOutputFile is the image written by the renderer.
	DefaultOutputFile = "fractal.png"
	// DefaultJokeURL is the endpoint queried by the fetcher.
	DefaultJokeURL = "https://icanhazdadjoke.com/"
	// DefaultLogLevel keeps standard error free of routine log lines.
	DefaultLogLevel = "warn"
)

// AppConfig holds the resolved configuration for one run.
type AppConfig struct {
	// Fractal enables the renderer. Disabled by default.
	Fractal bool
	// Fetch enables the dual joke fetcher. Enabled by default.
	Fetch bool

	OutputFile string
	// Open launches the platform viewer on OutputFile after it is written.
	Open   bool
	Width  int
	Height int
	CReal  float64
	CImag  float64

	URL string
	// Timeout bounds the whole run; zero means no deadline.
	Timeout time.Duration

	Quiet       bool
	Verbose     bool
	NoColor     bool
	LogLevel    string
	LogFormat   string
	MetricsFile string
	Completion  string
}

// Default returns the configuration used when no flag or variable is set.
func Default() AppConfig {
	return AppConfig{
		Fractal:    false,
		Fetch:      true,
		OutputFile: DefaultOutputFile,
		Open:       true,
		Width:      fractal.DefaultWidth,
		Height:     fractal.DefaultHeight,
		CReal:      real(fractal.DefaultC),
		CImag:      imag(fractal.DefaultC),
		URL:        DefaultJokeURL,
		LogLevel:   DefaultLogLevel,
		LogFormat:  string(logging.FormatConsole),
	}
}

// RenderParams converts the renderer settings to fractal.Params.
func (c AppConfig) RenderParams() fractal.Params {
	return fractal.Params{Width: c.Width, Height: c.Height, C: complex(c.CReal, c.CImag)}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Flags win over environment variables, which win over defaults.
// Flag errors are reported on errWriter by the flag package; -h/--help
// returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.BoolVar(&cfg.Fractal, "fractal", cfg.Fractal, "Render the Julia fractal image.")
	fs.BoolVar(&cfg.Fetch, "fetch", cfg.Fetch, "Fetch two jokes concurrently and print them to stderr.")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Image output path; the extension selects the format.")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "Image output path (shorthand).")
	fs.BoolVar(&cfg.Open, "open", cfg.Open, "Open the image with the platform viewer after saving.")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Canvas width in pixels.")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Canvas height in pixels.")
	fs.Float64Var(&cfg.CReal, "c-real", cfg.CReal, "Real part of the Julia constant.")
	fs.Float64Var(&cfg.CImag, "c-imag", cfg.CImag, "Imaginary part of the Julia constant.")
	fs.StringVar(&cfg.URL, "url", cfg.URL, "Joke endpoint queried with Accept: text/plain.")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum run time (0 = no limit).")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Suppress progress and summaries on stdout.")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose mode (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: trace, debug, info, warn, error or disabled.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file on exit.")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Print a shell completion script (bash, zsh, fish) and exit.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Fetches two jokes concurrently and optionally renders a Julia fractal.\n")
		fmt.Fprintf(errWriter, "Every flag can also be set with %s<NAME> (e.g. %sFRACTAL=true).\n\nFlags:\n", EnvPrefix, EnvPrefix)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot run.
func (c AppConfig) Validate() error {
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish":
			return nil
		default:
			return apperrors.NewConfigError("unsupported shell %q (accepted values: bash, zsh, fish)", c.Completion)
		}
	}
	if !c.Fractal && !c.Fetch {
		return apperrors.NewConfigError("nothing to do: enable --fractal or --fetch")
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("--timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unsupported --log-level %q (accepted values: trace, debug, info, warn, error, disabled)", c.LogLevel)
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return apperrors.NewConfigError("unsupported --log-format %q (accepted values: console, json)", c.LogFormat)
	}
	if c.Fractal {
		if err := c.RenderParams().Validate(); err != nil {
			return err
		}
		if _, err := imagefile.FormatFromPath(c.OutputFile); err != nil {
			return err
		}
	}
	if c.Fetch {
		u, err := url.ParseRequestURI(c.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperrors.NewConfigError("--url must be an absolute http(s) URL, got %q", c.URL)
		}
	}
	return nil
}
