//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks

package joke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
	"github.com/agbru/fractaljoke/internal/logging"
	"github.com/agbru/fractaljoke/internal/orchestration"
)

const (
	// DefaultURL is the joke endpoint.
	DefaultURL = "https://icanhazdadjoke.com/"
	// AcceptPlainText asks the endpoint for a bare joke instead of HTML.
	AcceptPlainText = "text/plain"
	// UserAgent identifies the client to the endpoint.
	UserAgent = "fractaljoke (https://github.com/agbru/fractaljoke)"
	// Separator joins the two bodies.
	Separator = "\n"
	// MaxBodySize is the largest response body accepted.
	MaxBodySize = 1 << 20
)

// ErrBodyTooLarge reports a response body longer than MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

const tracerName = "github.com/agbru/fractaljoke/internal/joke"

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves jokes from a single endpoint.
type Fetcher struct {
	client Doer
	url    string
	logger logging.Logger
	tracer trace.Tracer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(f *Fetcher) { f.tracer = t }
}

// NewFetcher returns a Fetcher for url. A nil client uses http.DefaultClient.
func NewFetcher(client Doer, url string, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	f := &Fetcher{
		client: client,
		url:    url,
		logger: logging.Nop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the endpoint queried by the fetcher.
func (f *Fetcher) URL() string { return f.url }

// Fetch performs one GET and returns the response body unchanged.
// slot numbers the request in errors and logs. The response status is not
// checked: a non-2xx body is returned as-is and only logged as a warning.
func (f *Fetcher) Fetch(ctx context.Context, slot int) (string, error) {
	ctx, span := f.tracer.Start(ctx, "joke.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("joke.slot", slot), attribute.String("http.url", f.url)))
	defer span.End()

	fail := func(err error) (string, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", apperrors.FetchError{Slot: slot, URL: f.url, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Accept", AcceptPlainText)
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return fail(fmt.Errorf("reading body: %w", err))
	}
	if len(body) > MaxBodySize {
		return fail(fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, MaxBodySize))
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode), attribute.Int("http.response_size", len(body)))
	fields := []logging.Field{
		logging.Int("slot", slot),
		logging.Int("status", resp.StatusCode),
		logging.Int("bytes", len(body)),
		logging.Duration("elapsed", time.Since(start)),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("joke endpoint returned a non-success status", fields...)
	} else {
		f.logger.Debug("joke fetched", fields...)
	}
	return string(body), nil
}

// FetchPair issues two requests concurrently and returns
// body1 + "\n" + body2, where body1 belongs to the first request issued.
// If either request fails, FetchPair returns that error and no text.
func (f *Fetcher) FetchPair(ctx context.Context) (string, error) {
	ctx, span := f.tracer.Start(ctx, "joke.fetch_pair")
	defer span.End()

	bodies, err := orchestration.Join(ctx, f.observeSlot,
		orchestration.Task{Name: "joke-1", Run: func(ctx context.Context) (string, error) { return f.Fetch(ctx, 1) }},
		orchestration.Task{Name: "joke-2", Run: func(ctx context.Context) (string, error) { return f.Fetch(ctx, 2) }},
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return strings.Join(bodies, Separator), nil
}

func (f *Fetcher) observeSlot(r orchestration.TaskResult) {
	fields := []logging.Field{
		logging.String("task", r.Name),
		logging.Duration("duration", r.Duration),
		logging.Bool("ok", r.Err == nil),
	}
	if r.Err != nil {
		fields = append(fields, logging.Err(r.Err))
	}
	f.logger.Debug("joke slot finished", fields...)
}
