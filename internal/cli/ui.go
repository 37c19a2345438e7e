//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fractaljoke/internal/format"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a progress bar and an ETA until
// progressChan is closed. Each value on the channel is the completed fraction
// of the render in [0, 1]. wg.Done is called on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan float64, label string, out io.Writer) {
	defer wg.Done()

	tracker := format.NewProgressWithETA()
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(0, 0, ProgressBarWidth)))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var latest float64
	for {
		select {
		case value, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(1, 0, ProgressBarWidth)))
				return
			}
			latest = value
		case <-ticker.C:
			progress, eta := tracker.UpdateWithETA(latest)
			s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth)))
		}
	}
}

// ProgressSink returns a callback that forwards values to ch without
// blocking; updates are dropped while the display is busy.
func ProgressSink(ch chan<- float64) func(float64) {
	return func(done float64) {
		select {
		case ch <- done:
		default:
		}
	}
}
