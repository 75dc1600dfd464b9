package filter

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// DCTSpectrum visualizes the coefficients of the separable 2D DCT-II, the
// transform used by JPEG compression. The 1D DCT basis matrix is applied to
// the rows and then the columns; the absolute coefficients are compressed
// with log(1+c) and min-max normalized to [0, 255], with the same
// uniform-value all-zero fallback as the Fourier spectrum.
func DCTSpectrum(img *Buffer) (*Buffer, error) {
	start := time.Now()

	src := img.toDense()
	dh := dctMatrix(img.H)
	dw := dctMatrix(img.W)

	// coeffs = D_h * X * D_w^T
	var tmp, coeffs mat.Dense
	tmp.Mul(dh, src)
	coeffs.Mul(&tmp, dw.T())

	h, w := coeffs.Dims()
	logAbs := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			logAbs.Set(y, x, math.Log1p(math.Abs(coeffs.At(y, x))))
		}
	}

	out := normalizeToBuffer(logAbs)

	log.WithFields(logrus.Fields{
		"filter":  "dct",
		"width":   img.W,
		"height":  img.H,
		"elapsed": time.Since(start),
	}).Info("DCT coefficient visualization complete")
	return out, nil
}

// dctMatrix builds the n x n orthonormal DCT-II basis matrix:
//
//	M[k][i] = sqrt(1/n)                                 for k == 0
//	M[k][i] = sqrt(2/n) * cos(pi*k*(2i+1) / (2n))       otherwise
func dctMatrix(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	dc := math.Sqrt(1.0 / float64(n))
	ac := math.Sqrt(2.0 / float64(n))
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if k == 0 {
				m.Set(k, i, dc)
			} else {
				m.Set(k, i, ac*math.Cos(math.Pi*float64(k)*float64(2*i+1)/float64(2*n)))
			}
		}
	}
	return m
}
