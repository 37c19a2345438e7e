package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates produced from very slow early rates.
const maxETA = 24 * time.Hour

// ProgressWithETA tracks the completed fraction of a long-running task and
// estimates the remaining time from the observed rate. It is safe for
// concurrent use.
type ProgressWithETA struct {
	mu           sync.Mutex
	startTime    time.Time
	progress     float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA starts a tracker at zero progress.
func NewProgressWithETA() *ProgressWithETA {
	return &ProgressWithETA{startTime: time.Now()}
}

// Update records the completed fraction, clamped to [0, 1].
func (p *ProgressWithETA) Update(value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = clamp(value)
}

// Progress returns the last recorded fraction.
func (p *ProgressWithETA) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// UpdateWithETA records value and returns it together with the estimated
// time to completion.
func (p *ProgressWithETA) UpdateWithETA(value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = clamp(value)
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && p.progress > 0 {
		p.progressRate = p.progress / elapsed
	}
	return p.progress, p.etaLocked()
}

// GetETA returns the current estimate, or 0 while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

func (p *ProgressWithETA) etaLocked() time.Duration {
	if p.progressRate <= 0 || p.progress >= 1 {
		return 0
	}
	eta := time.Duration((1 - p.progress) / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatETA renders an estimate compactly ("45s", "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		if s := int(eta.Seconds()) % 60; s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		h := int(eta.Hours())
		if m := int(eta.Minutes()) % 60; m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
}

// ProgressBar draws a bar of length runes for progress in [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = clamp(progress)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA combines a bar, a percentage and an estimate.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", clamp(progress)*100, ProgressBar(progress, width), FormatETA(eta))
}
