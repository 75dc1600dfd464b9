package filter

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Otsu binarizes the image with Otsu's method: the threshold sweep maintains
// running background/foreground class weights and means and selects the
// candidate maximizing the inter-class variance w0*w1*(mean0-mean1)^2.
// Candidates where either class is empty are skipped, and a strictly greater
// variance is required to replace the current best, so the first threshold
// achieving the maximum wins.
//
// Output pixels are 255 where input > threshold and 0 elsewhere. Applying
// Otsu to an already-binary {0, 255} image reproduces it exactly.
func Otsu(img *Buffer) (*Buffer, error) {
	start := time.Now()

	var hist [256]int
	for _, v := range img.Pix {
		hist[v]++
	}

	total := float64(len(img.Pix))
	var prob [256]float64
	sumAll := 0.0
	for v := 0; v < 256; v++ {
		prob[v] = float64(hist[v]) / total
		sumAll += float64(v) * prob[v]
	}

	best := 0
	maxVariance := 0.0
	weight0, weight1 := 0.0, 1.0
	cumsum0, cumsum1 := 0.0, sumAll

	for t := 0; t < 256; t++ {
		weight0 += prob[t]
		weight1 -= prob[t]
		if weight0 == 0 || weight1 == 0 {
			continue
		}

		cumsum0 += float64(t) * prob[t]
		cumsum1 -= float64(t) * prob[t]

		mean0 := cumsum0 / weight0
		mean1 := cumsum1 / weight1
		variance := weight0 * weight1 * (mean0 - mean1) * (mean0 - mean1)
		if variance > maxVariance {
			maxVariance = variance
			best = t
		}
	}

	out := NewBuffer(img.W, img.H)
	threshold := uint8(best)
	for i, v := range img.Pix {
		if v > threshold {
			out.Pix[i] = 255
		}
	}

	log.WithFields(logrus.Fields{
		"filter":    "otsu",
		"width":     img.W,
		"height":    img.H,
		"threshold": best,
		"variance":  maxVariance,
		"elapsed":   time.Since(start),
	}).Info("Otsu thresholding complete")
	return out, nil
}
