package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

// spectrumStops are the anchor colors of the spectrum colormap, dark blue
// through yellow, blended in Lab space for perceptual uniformity.
var spectrumStops = []string{"#0d0887", "#7e03a8", "#cc4778", "#f89441", "#f0f921"}

// SpectrumColormap renders a spectrum-type filter output (Fourier or DCT
// magnitudes) through a perceptual colormap for display. Intensity 0 maps to
// the darkest stop and 255 to the brightest.
func SpectrumColormap(b *filter.Buffer) *image.RGBA {
	stops := make([]colorful.Color, len(spectrumStops))
	for i, hex := range spectrumStops {
		c, err := colorful.Hex(hex)
		if err != nil {
			// Stops are compile-time constants; a parse failure is a bug.
			panic(err)
		}
		stops[i] = c
	}

	// Precompute the full 256-entry lookup once per call.
	var lut [256][3]uint8
	segments := len(stops) - 1
	for v := 0; v < 256; v++ {
		pos := float64(v) / 255 * float64(segments)
		seg := int(pos)
		if seg >= segments {
			seg = segments - 1
		}
		c := stops[seg].BlendLab(stops[seg+1], pos-float64(seg)).Clamped()
		r, g, bb := c.RGB255()
		lut[v] = [3]uint8{r, g, bb}
	}

	out := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			rgb := lut[b.At(x, y)]
			i := out.PixOffset(x, y)
			out.Pix[i] = rgb[0]
			out.Pix[i+1] = rgb[1]
			out.Pix[i+2] = rgb[2]
			out.Pix[i+3] = 255
		}
	}
	return out
}
