package detect

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

const (
	boxThickness = 3
	dashLength   = 8
	gapLength    = 4
	labelSize    = 18 // points at 72 DPI
)

// tierColors maps confidence tiers to box colors: solid red for high,
// orange for medium, gray for low.
var tierColors = map[string]string{
	TierHigh:   "#e53935",
	TierMedium: "#fb8c00",
	TierLow:    "#9e9e9e",
}

var (
	labelFont     *truetype.Font
	labelFontOnce sync.Once
)

// Annotate renders the detections over a grayscale X-ray: solid boxes for
// high-confidence detections, dashed for medium, and (only when drawLow is
// set) dashed gray for low. Each box carries a Vietnamese label with the
// confidence percentage.
func Annotate(img *filter.Buffer, detections []Detection, drawLow bool) *image.RGBA {
	canvas := grayToRGBA(img)

	for _, det := range detections {
		if det.ConfidenceTier == TierLow && !drawLow {
			continue
		}
		col := tierColor(det.ConfidenceTier)
		rect := image.Rect(det.BBox.X1, det.BBox.Y1, det.BBox.X2, det.BBox.Y2).
			Intersect(canvas.Bounds())
		if rect.Empty() {
			continue
		}

		dashed := det.ConfidenceTier != TierHigh
		drawRect(canvas, rect, col, dashed)

		label := fmt.Sprintf("%s %.0f%%", det.ClassNameVI, det.Confidence*100)
		drawLabel(canvas, label, rect.Min.X, rect.Min.Y, col)
	}
	return canvas
}

// grayToRGBA expands a single-channel buffer to RGBA for drawing.
func grayToRGBA(img *filter.Buffer) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			v := img.At(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = 255
		}
	}
	return out
}

func tierColor(tier string) color.RGBA {
	hex, ok := tierColors[tier]
	if !ok {
		hex = tierColors[TierLow]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err) // table entries are compile-time constants
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawRect strokes a rectangle outline, solid or dashed.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.RGBA, dashed bool) {
	for t := 0; t < boxThickness; t++ {
		drawHLine(dst, rect.Min.X, rect.Max.X, rect.Min.Y+t, col, dashed)
		drawHLine(dst, rect.Min.X, rect.Max.X, rect.Max.Y-1-t, col, dashed)
		drawVLine(dst, rect.Min.X+t, rect.Min.Y, rect.Max.Y, col, dashed)
		drawVLine(dst, rect.Max.X-1-t, rect.Min.Y, rect.Max.Y, col, dashed)
	}
}

func drawHLine(dst *image.RGBA, x1, x2, y int, col color.RGBA, dashed bool) {
	if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
		return
	}
	for x := x1; x < x2; x++ {
		if dashed && (x-x1)%(dashLength+gapLength) >= dashLength {
			continue
		}
		if x >= dst.Rect.Min.X && x < dst.Rect.Max.X {
			dst.SetRGBA(x, y, col)
		}
	}
}

func drawVLine(dst *image.RGBA, x, y1, y2 int, col color.RGBA, dashed bool) {
	if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
		return
	}
	for y := y1; y < y2; y++ {
		if dashed && (y-y1)%(dashLength+gapLength) >= dashLength {
			continue
		}
		if y >= dst.Rect.Min.Y && y < dst.Rect.Max.Y {
			dst.SetRGBA(x, y, col)
		}
	}
}

// drawLabel renders text just above (x, y), or below it when the box touches
// the top edge, over a filled backing strip for readability.
func drawLabel(dst *image.RGBA, text string, x, y int, col color.RGBA) {
	labelFontOnce.Do(func() {
		f, err := freetype.ParseFont(goregular.TTF)
		if err != nil {
			return // label rendering degrades to boxes only
		}
		labelFont = f
	})
	if labelFont == nil {
		return
	}

	stripH := labelSize + 6
	stripW := len(text)*labelSize*6/10 + 8
	top := y - stripH
	if top < dst.Rect.Min.Y {
		top = y
	}
	strip := image.Rect(x, top, x+stripW, top+stripH).Intersect(dst.Bounds())
	draw.Draw(dst, strip, image.NewUniform(col), image.Point{}, draw.Src)

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(labelFont)
	c.SetFontSize(labelSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(color.White))
	// Baseline sits near the bottom of the strip.
	if _, err := c.DrawString(text, freetype.Pt(x+4, top+stripH-5)); err != nil {
		return
	}
}
