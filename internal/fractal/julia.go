package fractal

import (
	"context"
	"math/cmplx"
	"time"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

const (
	// DefaultWidth and DefaultHeight are the canvas dimensions in pixels.
	DefaultWidth  = 800
	DefaultHeight = 800

	// MaxIterations caps the escape-time loop; the count is stored in one byte.
	MaxIterations = 255

	// EscapeRadius is the magnitude above which an orbit is considered escaped.
	EscapeRadius = 2.0

	// PlaneSpan is the width of the sampled region of the complex plane,
	// centered on the origin (-1.5 .. 1.5 on both axes).
	PlaneSpan = 3.0

	// MaxDimension bounds the canvas size accepted by Params.Validate.
	MaxDimension = 16384
)

// DefaultC is the Julia constant rendered when none is configured.
var DefaultC = complex(-0.4, 0.6)

// ProgressFunc receives the completed fraction of a pass, from 0.0 to 1.0.
type ProgressFunc func(done float64)

// Params describes a render.
type Params struct {
	Width, Height int
	C             complex128
}

// DefaultParams returns the 800×800 render of C = -0.4+0.6i.
func DefaultParams() Params {
	return Params{Width: DefaultWidth, Height: DefaultHeight, C: DefaultC}
}

// Validate checks the canvas dimensions.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return apperrors.NewConfigError("canvas size must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.Width > MaxDimension || p.Height > MaxDimension {
		return apperrors.NewConfigError("canvas size %dx%d exceeds the %d pixel limit", p.Width, p.Height, MaxDimension)
	}
	if cmplx.IsNaN(p.C) || cmplx.IsInf(p.C) {
		return apperrors.NewConfigError("julia constant must be finite, got %v", p.C)
	}
	return nil
}

// Stats summarizes an escape-time pass.
type Stats struct {
	// Iterations is the sum of escape counts over all pixels.
	Iterations uint64
	// Bounded counts pixels that reached MaxIterations without escaping.
	Bounded  int
	Duration time.Duration
}

// Initialize runs the gradient pass: red = floor(0.3·x) mod 256,
// green = 0, blue = floor(0.3·y) mod 256.
func Initialize(c *Canvas) {
	for y := 0; y < c.Height; y++ {
		b := gradient(y)
		for x := 0; x < c.Width; x++ {
			c.SetRGB(x, y, gradient(x), 0, b)
		}
	}
}

// gradient computes floor(0.3·v) in integers so no floating-point rounding
// can push an exact multiple below its floor, then truncates to a byte.
func gradient(v int) uint8 {
	return uint8(3 * v / 10)
}

// SampleAt maps pixel (x, y) to its starting point in the complex plane.
// The real part is driven by y and the imaginary part by x, each scaled by
// the other axis' factor; renders are transposed relative to a naive mapping.
func SampleAt(x, y, width, height int) complex128 {
	scalex := PlaneSpan / float64(width)
	scaley := PlaneSpan / float64(height)
	cx := float64(y)*scalex - PlaneSpan/2
	cy := float64(x)*scaley - PlaneSpan/2
	return complex(cx, cy)
}

// EscapeTime iterates z ← z² + c from z0 and returns the number of steps
// taken before |z| exceeds EscapeRadius, capped at maxIter.
func EscapeTime(z0, c complex128, maxIter int) int {
	z := z0
	i := 0
	for i < maxIter && cmplx.Abs(z) <= EscapeRadius {
		z = z*z + c
		i++
	}
	return i
}

// Orbit returns the first n iterates z1..zn of z ← z² + c starting at z0,
// without any escape check.
func Orbit(z0, c complex128, n int) []complex128 {
	orbit := make([]complex128, 0, n)
	z := z0
	for i := 0; i < n; i++ {
		z = z*z + c
		orbit = append(orbit, z)
	}
	return orbit
}

// ApplyEscapeTime runs the escape-time pass, overwriting the green channel
// of every pixel with its escape count. Red and blue are left untouched.
// The context is checked once per column.
func ApplyEscapeTime(ctx context.Context, canvas *Canvas, c complex128, progress ProgressFunc) (Stats, error) {
	start := time.Now()
	var stats Stats
	for x := 0; x < canvas.Width; x++ {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
		for y := 0; y < canvas.Height; y++ {
			i := EscapeTime(SampleAt(x, y, canvas.Width, canvas.Height), c, MaxIterations)
			canvas.SetGreen(x, y, uint8(i))
			stats.Iterations += uint64(i)
			if i == MaxIterations {
				stats.Bounded++
			}
		}
		if progress != nil {
			progress(float64(x+1) / float64(canvas.Width))
		}
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// Render allocates a canvas for p and runs both passes on it.
func Render(ctx context.Context, p Params, progress ProgressFunc) (*Canvas, Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}
	canvas := NewCanvas(p.Width, p.Height)
	Initialize(canvas)
	stats, err := ApplyEscapeTime(ctx, canvas, p.C, progress)
	if err != nil {
		return nil, stats, err
	}
	return canvas, stats, nil
}
