package app

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fractaljoke/internal/cli"
	"github.com/agbru/fractaljoke/internal/format"
	"github.com/agbru/fractaljoke/internal/fractal"
	"github.com/agbru/fractaljoke/internal/imagefile"
	"github.com/agbru/fractaljoke/internal/joke"
	"github.com/agbru/fractaljoke/internal/logging"
	"github.com/agbru/fractaljoke/internal/metrics"
)

const tracerName = "github.com/agbru/fractaljoke/internal/app"

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// runRender computes the Julia image, saves it and opens it in the viewer.
func (a *Application) runRender(ctx context.Context, out io.Writer, recorder *metrics.Recorder, logger logging.Logger) (err error) {
	tracer := otel.Tracer(tracerName)
	params := a.Config.RenderParams()
	ctx, span := tracer.Start(ctx, "fractal.render", trace.WithAttributes(
		attribute.Int("fractal.width", params.Width),
		attribute.Int("fractal.height", params.Height),
		attribute.String("fractal.output", a.Config.OutputFile)))
	defer func() { endSpan(span, err) }()

	progressChan := make(chan float64, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, "Rendering", out)

	canvas, stats, err := fractal.Render(ctx, params, cli.ProgressSink(progressChan))
	close(progressChan)
	wg.Wait()
	if err != nil {
		return err
	}
	recorder.ObserveRender(stats.Duration, stats.Iterations, stats.Bounded)
	logger.Debug("escape-time pass complete",
		logging.Uint64("iterations", stats.Iterations),
		logging.Int("bounded", stats.Bounded),
		logging.Duration("elapsed", stats.Duration))

	_, encodeSpan := tracer.Start(ctx, "fractal.encode")
	start := time.Now()
	imgFormat, err := imagefile.Save(a.Config.OutputFile, canvas)
	endSpan(encodeSpan, err)
	if err != nil {
		return err
	}
	logger.Info("image saved",
		logging.String("path", a.Config.OutputFile),
		logging.String("format", string(imgFormat)),
		logging.Duration("elapsed", elapsed(start)))

	cli.DisplayImageSaved(a.Config.OutputFile, out)
	cli.DisplayRenderSummary(cli.RenderSummary{
		Path:       a.Config.OutputFile,
		Format:     string(imgFormat),
		Width:      params.Width,
		Height:     params.Height,
		C:          params.C,
		Iterations: stats.Iterations,
		Bounded:    stats.Bounded,
		Duration:   format.FormatExecutionDuration(stats.Duration),
	}, out)
	if a.Config.Verbose {
		cli.DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), out)
	}

	if !a.Config.Open {
		cli.DisplayViewerSkipped(a.Config.OutputFile, out)
		return nil
	}
	openCtx, openSpan := tracer.Start(ctx, "viewer.open")
	err = a.Opener.Open(openCtx, a.Config.OutputFile)
	endSpan(openSpan, err)
	return err
}

// runFetch retrieves two jokes concurrently and writes them to ErrWriter.
func (a *Application) runFetch(ctx context.Context, out io.Writer, recorder *metrics.Recorder, logger logging.Logger) error {
	client := *a.HTTPClient
	client.Transport = recorder.InstrumentRoundTripper(a.HTTPClient.Transport)

	fetcher := joke.NewFetcher(&client, a.Config.URL, joke.WithLogger(logger))

	progressChan := make(chan float64)
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, "Fetching", out)

	start := time.Now()
	text, err := fetcher.FetchPair(ctx)
	close(progressChan)
	wg.Wait()
	if err != nil {
		return err
	}
	logger.Debug("joke pair fetched", logging.Int("bytes", len(text)), logging.Duration("elapsed", elapsed(start)))
	return cli.WriteJokes(a.ErrWriter, text)
}

var _ joke.Doer = (*http.Client)(nil)
