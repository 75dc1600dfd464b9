package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/transform"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

// EncodeBase64PNG encodes a grayscale buffer as a base64 PNG string, the
// wire format the HTTP API returns for every processed image.
func EncodeBase64PNG(b *filter.Buffer) (string, error) {
	return EncodeImageBase64PNG(b.ToGray())
}

// EncodeImageBase64PNG encodes any image as a base64 PNG string.
func EncodeImageBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Thumbnail renders a preview of the buffer whose longest side is at most
// maxSide pixels, preserving aspect ratio, encoded as base64 PNG. Buffers
// already within bounds are encoded as-is.
func Thumbnail(b *filter.Buffer, maxSide int) (string, error) {
	if b.W <= maxSide && b.H <= maxSide {
		return EncodeBase64PNG(b)
	}

	w, h := b.W, b.H
	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	resized := transform.Resize(b.ToGray(), w, h, transform.Linear)
	return EncodeImageBase64PNG(resized)
}
