package filter

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Sobel applies Sobel edge detection: the image is convolved with the 3x3
// horizontal and vertical Sobel kernels, the gradient magnitude
// sqrt(gx^2+gy^2) is computed per pixel, and the magnitude map is min-max
// normalized to [0, 255].
//
// A uniform gradient map (max == min, e.g. a blank image) yields an all-zero
// output rather than a division by zero.
func Sobel(img *Buffer) (*Buffer, error) {
	start := time.Now()

	src := img.toDense()
	gx, err := Convolve(src, SobelX())
	if err != nil {
		return nil, err
	}
	gy, err := Convolve(src, SobelY())
	if err != nil {
		return nil, err
	}

	magnitude := gradientMagnitude(gx, gy)
	out := normalizeToBuffer(magnitude)

	log.WithFields(logrus.Fields{
		"filter":  "sobel",
		"width":   img.W,
		"height":  img.H,
		"elapsed": time.Since(start),
	}).Info("Sobel edge detection complete")
	return out, nil
}

// gradientMagnitude combines two gradient components into sqrt(gx^2+gy^2).
func gradientMagnitude(gx, gy *mat.Dense) *mat.Dense {
	h, w := gx.Dims()
	out := mat.NewDense(h, w, nil)
	xr, yr, or := gx.RawMatrix(), gy.RawMatrix(), out.RawMatrix()
	for y := 0; y < h; y++ {
		xs := xr.Data[y*xr.Stride : y*xr.Stride+w]
		ys := yr.Data[y*yr.Stride : y*yr.Stride+w]
		os := or.Data[y*or.Stride : y*or.Stride+w]
		for x := 0; x < w; x++ {
			os[x] = math.Hypot(xs[x], ys[x])
		}
	}
	return out
}
