package filter

import (
	"gonum.org/v1/gonum/mat"
)

// Convolve performs true 2D convolution (kernel spatially flipped, not
// correlation) of a float image with an odd-sized kernel, returning a float
// matrix with the same dimensions as src.
//
// The image is padded by K/2 on every side with mirror reflection before the
// sliding window is applied. Reflection avoids the artificial dark borders
// that zero padding would introduce, which matters for edge detection near
// image boundaries.
//
// Returns a *KernelShapeError if either kernel dimension is even.
//
// The inner loops run over the raw flat storage of the padded matrix with a
// pre-flipped flat kernel; a 2048x2048 image with a 5x5 kernel completes in
// a couple of seconds.
func Convolve(src, kernel *mat.Dense) (*mat.Dense, error) {
	kh, kw := kernel.Dims()
	if kh%2 == 0 || kw%2 == 0 {
		return nil, &KernelShapeError{Rows: kh, Cols: kw}
	}

	h, w := src.Dims()
	padH, padW := kh/2, kw/2
	padded := padReflect(src, padH, padW)

	// Flip the kernel once up front; the window loop then reads it forward.
	flipped := make([]float64, kh*kw)
	for i := 0; i < kh; i++ {
		for j := 0; j < kw; j++ {
			flipped[(kh-1-i)*kw+(kw-1-j)] = kernel.At(i, j)
		}
	}

	out := mat.NewDense(h, w, nil)
	pd := padded.RawMatrix()
	od := out.RawMatrix()
	for y := 0; y < h; y++ {
		dst := od.Data[y*od.Stride : y*od.Stride+w]
		for x := 0; x < w; x++ {
			var sum float64
			for ky := 0; ky < kh; ky++ {
				win := pd.Data[(y+ky)*pd.Stride+x : (y+ky)*pd.Stride+x+kw]
				ker := flipped[ky*kw : ky*kw+kw]
				for kx, v := range win {
					sum += v * ker[kx]
				}
			}
			dst[x] = sum
		}
	}
	return out, nil
}

// padReflect pads a matrix by mirroring interior samples across each border,
// without repeating the border sample itself (so row -1 copies row 1).
// A single-row or single-column source degenerates to replication.
func padReflect(src *mat.Dense, padH, padW int) *mat.Dense {
	h, w := src.Dims()
	out := mat.NewDense(h+2*padH, w+2*padW, nil)
	for y := 0; y < h+2*padH; y++ {
		sy := reflectIndex(y-padH, h)
		for x := 0; x < w+2*padW; x++ {
			out.Set(y, x, src.At(sy, reflectIndex(x-padW, w)))
		}
	}
	return out
}

// reflectIndex maps an out-of-range index into [0, n) by mirror reflection.
// Iterates because a pad wider than the image can bounce more than once.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// clampIndex restricts an index to [0, n), replicating the border sample.
// Used by the median filter, which pads with edge values rather than mirrors.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
