package imaging

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

// Stable codes for upload validation failures. The server maps these to
// localized user-facing messages.
const (
	CodeCorruptedImage = "CORRUPTED_IMAGE"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeImageTooSmall  = "IMAGE_TOO_SMALL"
	CodeImageTooLarge  = "IMAGE_TOO_LARGE"
)

// ValidationError reports an upload that failed the decode/validate contract.
type ValidationError struct {
	Code   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", strings.ToLower(strings.ReplaceAll(e.Code, "_", " ")), e.Detail)
}

// Info describes a decoded upload.
type Info struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// DecodeGray decodes uploaded image bytes into a single-channel buffer,
// enforcing the upload contract: PNG or JPEG format, intact data, and both
// dimensions within [minDim, maxDim]. EXIF orientation is honored before
// conversion. Color inputs are reduced to intensity with BT.601 luminance
// weights.
func DecodeGray(data []byte, minDim, maxDim int) (*filter.Buffer, *Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, &ValidationError{Code: CodeCorruptedImage, Detail: err.Error()}
	}

	switch format {
	case "png", "jpeg":
	default:
		return nil, nil, &ValidationError{
			Code:   CodeInvalidFormat,
			Detail: fmt.Sprintf("got %q, allowed formats: PNG, JPEG", format),
		}
	}

	if cfg.Width < minDim || cfg.Height < minDim {
		return nil, nil, &ValidationError{
			Code:   CodeImageTooSmall,
			Detail: fmt.Sprintf("got %dx%d, minimum %dx%d", cfg.Width, cfg.Height, minDim, minDim),
		}
	}
	if cfg.Width > maxDim || cfg.Height > maxDim {
		return nil, nil, &ValidationError{
			Code:   CodeImageTooLarge,
			Detail: fmt.Sprintf("got %dx%d, maximum %dx%d", cfg.Width, cfg.Height, maxDim, maxDim),
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, &ValidationError{Code: CodeCorruptedImage, Detail: err.Error()}
	}

	return ToGrayBuffer(img), &Info{Width: cfg.Width, Height: cfg.Height, Format: strings.ToUpper(format)}, nil
}

// ToGrayBuffer converts any image to a single-channel buffer using BT.601
// luminance weights.
func ToGrayBuffer(img image.Image) *filter.Buffer {
	bounds := img.Bounds()
	out := filter.NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out.Set(x, y, uint8(lum+0.5))
		}
	}
	return out
}
