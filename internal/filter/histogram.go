package filter

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// EqualizeHistogram enhances contrast by remapping intensities through the
// normalized cumulative distribution function:
//
//	v' = round((CDF[v] - cdfMin) / (totalPixels - cdfMin) * 255)
//
// where cdfMin is the first non-zero CDF entry. A degenerate single-value
// image (totalPixels == cdfMin) is returned unchanged rather than dividing
// by zero.
func EqualizeHistogram(img *Buffer) (*Buffer, error) {
	start := time.Now()

	var hist [256]int
	for _, v := range img.Pix {
		hist[v]++
	}

	var cdf [256]int
	cdf[0] = hist[0]
	for i := 1; i < 256; i++ {
		cdf[i] = cdf[i-1] + hist[i]
	}

	cdfMin := 0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}

	total := len(img.Pix)
	if total-cdfMin == 0 {
		log.Warn("Histogram equalization: single-intensity image, returning input unchanged")
		return img.Clone(), nil
	}

	var lut [256]uint8
	denom := float64(total - cdfMin)
	for v := 0; v < 256; v++ {
		scaled := math.Round(float64(cdf[v]-cdfMin) / denom * 255)
		if scaled < 0 {
			scaled = 0
		}
		lut[v] = uint8(scaled)
	}

	out := NewBuffer(img.W, img.H)
	for i, v := range img.Pix {
		out.Pix[i] = lut[v]
	}

	log.WithFields(logrus.Fields{
		"filter":  "histogram",
		"width":   img.W,
		"height":  img.H,
		"elapsed": time.Since(start),
	}).Info("Histogram equalization complete")
	return out, nil
}
