package filter

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GaussianKernel generates a normalized 2D Gaussian kernel:
//
//	weight(i, j) = exp(-((i-c)^2 + (j-c)^2) / (2*sigma^2)), c = size/2
//
// scaled so the weights sum to 1.0. An even size is silently bumped to the
// next odd size; this mirrors the filters' documented parameter handling and
// is not an error.
func GaussianKernel(size int, sigma float64) *mat.Dense {
	if size%2 == 0 {
		size++
	}
	center := size / 2
	kernel := mat.NewDense(size, size, nil)

	sum := 0.0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			x := float64(i - center)
			y := float64(j - center)
			v := math.Exp(-(x*x + y*y) / (2 * sigma * sigma))
			kernel.Set(i, j, v)
			sum += v
		}
	}
	kernel.Scale(1/sum, kernel)
	return kernel
}

// SobelX returns the fixed 3x3 horizontal-gradient Sobel kernel.
func SobelX() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// SobelY returns the fixed 3x3 vertical-gradient Sobel kernel.
func SobelY() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}
