// Package imagefile serializes rendered images to disk, choosing the codec
// from the output file extension.
package imagefile

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

// Format identifies an image codec.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// JPEGQuality is the quality used when the output extension selects JPEG.
const JPEGQuality = 95

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

// Lossless reports whether decoding an encoded image yields identical pixels.
func (f Format) Lossless() bool {
	switch f {
	case PNG, BMP, TIFF:
		return true
	default:
		return false
	}
}

// FormatFromPath returns the format selected by the extension of path.
// Matching is case-insensitive. An unknown or missing extension is a
// configuration error.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", apperrors.NewConfigError("output %q has no extension; cannot choose an image format", path)
	}
	return "", apperrors.NewConfigError("unsupported image extension %q (accepted: .png, .jpg, .jpeg, .gif, .bmp, .tif, .tiff)", ext)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
}

// Decode reads an image in any supported format.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return img, Format(name), nil
}

// Save writes img to path, creating parent directories as needed and
// overwriting any existing file. The format comes from the extension.
//
// Returns:
//   - Format: the codec that was used.
//   - error: a ConfigError for an unknown extension, otherwise a RenderError.
func Save(path string, img image.Image) (Format, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return f, apperrors.RenderError{Stage: "mkdir", Path: path, Cause: err}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return f, apperrors.RenderError{Stage: "create", Path: path, Cause: err}
	}

	// A failed write leaves no partial image behind.
	discard := func(stage string, cause error) (Format, error) {
		file.Close()
		os.Remove(path)
		return f, apperrors.RenderError{Stage: stage, Path: path, Cause: cause}
	}

	w := bufio.NewWriter(file)
	if err := Encode(w, img, f); err != nil {
		return discard("encode", err)
	}
	if err := w.Flush(); err != nil {
		return discard("write", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return f, apperrors.RenderError{Stage: "close", Path: path, Cause: err}
	}
	return f, nil
}
