package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
)

// MockSpinner for testing
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan float64)

	go func() {
		progressChan <- 0.5
		time.Sleep(2 * ProgressRefreshRate)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, "Rendering", io.Discard)
	wg.Wait()

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	last := mockS.suffixes[len(mockS.suffixes)-1]
	if !strings.Contains(last, "100.00%") || !strings.Contains(last, "Rendering") {
		t.Errorf("final suffix should show completion, got %q", last)
	}
	sawHalf := false
	for _, s := range mockS.suffixes {
		if strings.Contains(s, "50.00%") {
			sawHalf = true
		}
	}
	if !sawHalf {
		t.Errorf("expected an intermediate 50%% update, got %q", mockS.suffixes)
	}
}

func TestDisplayProgress_ClosedImmediately(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(options ...spinner.Option) Spinner { return &MockSpinner{} }

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan float64)
	close(progressChan)

	DisplayProgress(&wg, progressChan, "Rendering", io.Discard)
	wg.Wait()
}

func TestProgressSink_NeverBlocks(t *testing.T) {
	t.Parallel()
	ch := make(chan float64, 1)
	sink := ProgressSink(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			sink(float64(i) / 100)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ProgressSink blocked on a full channel")
	}
	if got := <-ch; got != 0 {
		t.Errorf("first buffered value = %v, want 0", got)
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultTestConfig()
	cfg.Fractal = true

	PrintExecutionConfig(cfg, &buf)
	output := buf.String()
	for _, want := range []string{"800x800", "fractal.png", "icanhazdadjoke.com", "Timeout: none", "--- Starting Execution ---"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}
