// Package imagenorm turns a user photo into a bounded JPEG data URI.
package imagenorm

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"os"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension bounds the longer side of the output image.
	MaxDimension = 1920
	// Quality is the JPEG encoder quality, 0.9 on a 0-1 scale.
	Quality = 90

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Errors carry the message shown to the user.
//
//nolint:staticcheck // user-facing messages
var (
	ErrInvalidInput = errors.New("Please select a valid image file")
	ErrDecode       = errors.New("Failed to load image. Please try another file.")
	ErrEncode       = errors.New("Failed to process image")
)

// NormalizeFile reads path, sniffs its type from the content and normalizes it.
func NormalizeFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image file: %w", err)
	}
	return Normalize(bytes.NewReader(raw), mimetype.Detect(raw).String())
}

// Normalize decodes r, downscales it so neither side exceeds MaxDimension and re-encodes it as JPEG.
// declaredType must be an image/* media type.
func Normalize(r io.Reader, declaredType string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(declaredType)), "image/") {
		return "", ErrInvalidInput
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	b := src.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy())
	img := src
	if w != b.Dx() || h != b.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// TargetSize returns the output dimensions for a w x h image. Images within MaxDimension are unchanged;
// larger ones are scaled so the longer side is exactly MaxDimension, keeping the aspect ratio.
func TargetSize(w, h int) (int, int) {
	if w <= MaxDimension && h <= MaxDimension {
		return w, h
	}
	if w > h {
		return MaxDimension, scaled(h, w)
	}
	return scaled(w, h), MaxDimension
}

func scaled(short, long int) int {
	return max(1, int(math.Round(float64(short)*MaxDimension/float64(long))))
}
