package filter

import (
	"math"
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// FourierSpectrum visualizes the 2D discrete Fourier transform of the image:
// the zero-frequency component is shifted to the center, the magnitude is
// taken, compressed with log(1+m) and min-max normalized to [0, 255].
//
// A uniform log-magnitude map (max == min) yields an all-zero output.
func FourierSpectrum(img *Buffer) (*Buffer, error) {
	start := time.Now()

	rows := make([][]float64, img.H)
	for y := 0; y < img.H; y++ {
		row := make([]float64, img.W)
		for x := 0; x < img.W; x++ {
			row[x] = float64(img.Pix[y*img.W+x])
		}
		rows[y] = row
	}

	freq := fft.FFT2Real(rows)

	// Shift the zero-frequency bin to the center and take log magnitude.
	logMag := mat.NewDense(img.H, img.W, nil)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			cy := (y + img.H/2) % img.H
			cx := (x + img.W/2) % img.W
			logMag.Set(cy, cx, math.Log1p(cmplx.Abs(freq[y][x])))
		}
	}

	out := normalizeToBuffer(logMag)

	log.WithFields(logrus.Fields{
		"filter":  "fourier",
		"width":   img.W,
		"height":  img.H,
		"elapsed": time.Since(start),
	}).Info("Fourier magnitude spectrum complete")
	return out, nil
}
