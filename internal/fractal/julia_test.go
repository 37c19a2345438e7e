package fractal

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"testing"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

// TestOrbitReferenceTrace checks the orbit of the canvas center, which maps
// to z0 = 0, against a hand-computed trace for C = -0.4+0.6i.
func TestOrbitReferenceTrace(t *testing.T) {
	t.Parallel()

	z0 := SampleAt(400, 400, DefaultWidth, DefaultHeight)
	if z0 != 0 {
		t.Fatalf("pixel (400,400) should map to the origin, got %v", z0)
	}

	want := []complex128{
		complex(-0.4, 0.6),
		complex(-0.6, 0.12),
		complex(-0.0544, 0.456),
		complex(-0.60497664, 0.5503872),
		complex(-0.3369293349781504, -0.0659427979100159),
	}
	got := Orbit(z0, DefaultC, len(want))
	if len(got) != len(want) {
		t.Fatalf("expected %d iterates, got %d", len(want), len(got))
	}
	const eps = 1e-12
	for i := range want {
		if math.Abs(real(got[i])-real(want[i])) > eps || math.Abs(imag(got[i])-imag(want[i])) > eps {
			t.Errorf("z%d = %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestEscapeTime_KnownPixels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"center", 400, 400, 26},
		{"corner outside radius", 0, 0, 0},
		{"far corner outside radius", 799, 799, 0},
		{"left edge middle", 0, 400, 1},
		{"top edge middle", 400, 0, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z0 := SampleAt(tt.x, tt.y, DefaultWidth, DefaultHeight)
			if got := EscapeTime(z0, DefaultC, MaxIterations); got != tt.want {
				t.Errorf("EscapeTime at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestSampleAt_AxisSwap pins the transposed mapping: x drives the imaginary
// part and y drives the real part.
func TestSampleAt_AxisSwap(t *testing.T) {
	t.Parallel()

	z := SampleAt(0, 400, DefaultWidth, DefaultHeight)
	if real(z) != 0 || imag(z) != -1.5 {
		t.Errorf("SampleAt(0,400) = %v, want (0-1.5i)", z)
	}
	z = SampleAt(400, 0, DefaultWidth, DefaultHeight)
	if real(z) != -1.5 || imag(z) != 0 {
		t.Errorf("SampleAt(400,0) = %v, want (-1.5+0i)", z)
	}
}

func TestEscapeTime_BoundedOrbit(t *testing.T) {
	t.Parallel()
	// z = 0 with c = 0 never moves.
	if got := EscapeTime(0, 0, MaxIterations); got != MaxIterations {
		t.Errorf("fixed point should hit the cap, got %d", got)
	}
	if got := EscapeTime(0, 0, 10); got != 10 {
		t.Errorf("cap should be respected, got %d", got)
	}
}

func TestInitialize_Gradient(t *testing.T) {
	t.Parallel()
	c := NewCanvas(DefaultWidth, DefaultHeight)
	Initialize(c)

	tests := []struct {
		x, y    int
		r, g, b uint8
	}{
		{0, 0, 0, 0, 0},
		{10, 20, 3, 0, 6},
		{799, 0, 239, 0, 0},
		{0, 799, 0, 0, 239},
		{333, 666, 99, 0, 199},
	}
	for _, tt := range tests {
		r, g, b := c.RGB(tt.x, tt.y)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)", tt.x, tt.y, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestInitialize_WrapsModulo256(t *testing.T) {
	t.Parallel()
	c := NewCanvas(1000, 1)
	Initialize(c)
	// floor(0.3*900) = 270, which wraps to 14.
	if r, _, _ := c.RGB(900, 0); r != 14 {
		t.Errorf("red at x=900 = %d, want 14", r)
	}
}

func TestRender_KeepsGradientChannels(t *testing.T) {
	t.Parallel()
	canvas, stats, err := Render(context.Background(), DefaultParams(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	ref := NewCanvas(DefaultWidth, DefaultHeight)
	Initialize(ref)

	var sum uint64
	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			r, g, b := canvas.RGB(x, y)
			wr, _, wb := ref.RGB(x, y)
			if r != wr || b != wb {
				t.Fatalf("pixel (%d,%d) red/blue changed: (%d,%d) want (%d,%d)", x, y, r, b, wr, wb)
			}
			sum += uint64(g)
		}
	}
	if sum != stats.Iterations {
		t.Errorf("green channel sum %d does not match reported iterations %d", sum, stats.Iterations)
	}
	if _, g, _ := canvas.RGB(400, 400); g != 26 {
		t.Errorf("center green = %d, want 26", g)
	}
}

func TestRender_ReportsProgress(t *testing.T) {
	t.Parallel()
	var calls int
	var last float64
	_, _, err := Render(context.Background(), Params{Width: 40, Height: 30, C: DefaultC}, func(done float64) {
		if done < last {
			t.Errorf("progress went backwards: %f after %f", done, last)
		}
		last = done
		calls++
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if calls != 40 {
		t.Errorf("expected one progress call per column (40), got %d", calls)
	}
	if last != 1.0 {
		t.Errorf("final progress = %f, want 1.0", last)
	}
}

func TestRender_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	canvas, _, err := Render(ctx, DefaultParams(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if canvas != nil {
		t.Error("canceled render should not return a canvas")
	}
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"default", DefaultParams(), false},
		{"zero width", Params{Width: 0, Height: 10}, true},
		{"negative height", Params{Width: 10, Height: -1}, true},
		{"too large", Params{Width: MaxDimension + 1, Height: 10}, true},
		{"nan constant", Params{Width: 10, Height: 10, C: complex(math.NaN(), 0)}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected ConfigError, got %T", err)
				}
			}
		})
	}
}

// TestCanvas_PNGRoundTrip encodes a rendered canvas and decodes it back,
// expecting identical triplets and a 3-channel (opaque) encoding.
func TestCanvas_PNGRoundTrip(t *testing.T) {
	t.Parallel()
	canvas, _, err := Render(context.Background(), Params{Width: 120, Height: 90, C: DefaultC}, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	// Byte 25 of a PNG stream is the IHDR color type; 2 is truecolor RGB.
	if ct := buf.Bytes()[25]; ct != 2 {
		t.Errorf("expected PNG color type 2 (RGB), got %d", ct)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 120, 90) {
		t.Fatalf("decoded bounds = %v", decoded.Bounds())
	}
	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			r, g, b, _ := decoded.At(x, y).RGBA()
			wr, wg, wb := canvas.RGB(x, y)
			if uint8(r>>8) != wr || uint8(g>>8) != wg || uint8(b>>8) != wb {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)", x, y, r>>8, g>>8, b>>8, wr, wg, wb)
			}
		}
	}
}

func TestCanvas_AtOutOfBounds(t *testing.T) {
	t.Parallel()
	c := NewCanvas(2, 2)
	c.SetRGB(1, 1, 1, 2, 3)
	if _, _, _, a := c.At(5, 5).RGBA(); a != 0 {
		t.Error("out-of-bounds pixel should be transparent")
	}
	if r, g, b, a := c.At(1, 1).RGBA(); r>>8 != 1 || g>>8 != 2 || b>>8 != 3 || a>>8 != 0xff {
		t.Errorf("At(1,1) = (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
}
