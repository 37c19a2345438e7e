package fractal

import (
	"image"
	"image/color"
)

// Canvas is a fixed-size grid of RGB byte triplets stored row-major.
// It implements image.Image and reports itself opaque, so image/png encodes
// it as 8-bit truecolor without an alpha channel.
type Canvas struct {
	Width, Height int
	// Pix holds the samples; the pixel at (x, y) starts at Pix[(y*Width+x)*3].
	Pix []uint8
}

// NewCanvas allocates a zeroed (black) canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

func (c *Canvas) offset(x, y int) int {
	return (y*c.Width + x) * 3
}

// In reports whether (x, y) lies on the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// RGB returns the triplet at (x, y). The point must be on the canvas.
func (c *Canvas) RGB(x, y int) (r, g, b uint8) {
	i := c.offset(x, y)
	return c.Pix[i], c.Pix[i+1], c.Pix[i+2]
}

// SetRGB overwrites the triplet at (x, y).
func (c *Canvas) SetRGB(x, y int, r, g, b uint8) {
	i := c.offset(x, y)
	c.Pix[i], c.Pix[i+1], c.Pix[i+2] = r, g, b
}

// SetGreen overwrites only the green channel at (x, y).
func (c *Canvas) SetGreen(x, y int, g uint8) {
	c.Pix[c.offset(x, y)+1] = g
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

// At implements image.Image. Points outside the canvas are transparent black.
func (c *Canvas) At(x, y int) color.Color {
	if !c.In(x, y) {
		return color.RGBA{}
	}
	r, g, b := c.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Opaque reports that every pixel is fully opaque.
func (c *Canvas) Opaque() bool { return true }
