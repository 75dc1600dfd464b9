package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func grayImage(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestDecodeGray_PNG(t *testing.T) {
	data := encodePNG(t, grayImage(32, 24, 180))

	buf, info, err := DecodeGray(data, 1, 2048)
	if err != nil {
		t.Fatalf("DecodeGray failed: %v", err)
	}
	if buf.W != 32 || buf.H != 24 {
		t.Errorf("buffer dims: got %dx%d, want 32x24", buf.W, buf.H)
	}
	if info.Width != 32 || info.Height != 24 || info.Format != "PNG" {
		t.Errorf("info: got %+v, want 32x24 PNG", info)
	}
	for i, v := range buf.Pix {
		if v != 180 {
			t.Fatalf("Pix[%d] = %d, want 180", i, v)
		}
	}
}

func TestDecodeGray_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, grayImage(16, 16, 128), nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}

	b, info, err := DecodeGray(buf.Bytes(), 1, 2048)
	if err != nil {
		t.Fatalf("DecodeGray failed: %v", err)
	}
	if info.Format != "JPEG" {
		t.Errorf("format: got %q, want JPEG", info.Format)
	}
	// JPEG is lossy; a flat field still lands very close to the source value.
	for i, v := range b.Pix {
		if v < 125 || v > 131 {
			t.Fatalf("Pix[%d] = %d, want near 128", i, v)
		}
	}
}

func TestDecodeGray_ColorToLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255}) // pure red
		}
	}

	buf, _, err := DecodeGray(encodePNG(t, img), 1, 2048)
	if err != nil {
		t.Fatalf("DecodeGray failed: %v", err)
	}
	// BT.601: 0.299 * 255 rounds to 76.
	for i, v := range buf.Pix {
		if v != 76 {
			t.Fatalf("Pix[%d] = %d, want 76", i, v)
		}
	}
}

func TestDecodeGray_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantCode string
	}{
		{
			name:     "garbage bytes",
			data:     []byte("definitely not an image"),
			wantCode: CodeCorruptedImage,
		},
		{
			name:     "truncated png",
			data:     encodePNG(t, grayImage(16, 16, 10))[:40],
			wantCode: CodeCorruptedImage,
		},
		{
			name: "gif rejected",
			data: []byte{
				'G', 'I', 'F', '8', '9', 'a',
				1, 0, 1, 0, 0x80, 0, 0, // 1x1, global color table
				0, 0, 0, 0xff, 0xff, 0xff,
				0x2c, 0, 0, 0, 0, 1, 0, 1, 0, 0,
				0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
			},
			wantCode: CodeInvalidFormat,
		},
		{
			name:     "too small",
			data:     encodePNG(t, grayImage(8, 8, 10)),
			wantCode: CodeImageTooSmall,
		},
		{
			name:     "too large",
			data:     encodePNG(t, grayImage(300, 10, 10)),
			wantCode: CodeImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeGray(tt.data, 10, 256)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("code: got %q, want %q", verr.Code, tt.wantCode)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Code: CodeImageTooSmall, Detail: "got 8x8, minimum 10x10"}
	if got, want := err.Error(), "image too small: got 8x8, minimum 10x10"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
