package filter

import (
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Fixed Canny defaults. Smoothing parameters are not user-configurable; the
// thresholds apply when auto-thresholding is disabled and no explicit value
// is supplied.
const (
	cannyAutoLowPercentile  = 0.50
	cannyAutoHighPercentile = 0.85
	cannyDefaultLow         = 100
	cannyDefaultHigh        = 200

	// hysteresisMaxPasses bounds edge tracking against degenerate inputs.
	// It is a safety cap, not a convergence guarantee: a sufficiently busy
	// image could need more passes to promote every reachable weak edge.
	hysteresisMaxPasses = 10

	// cannyMagnitudeEpsilon separates real gradients from the float noise
	// Gaussian smoothing leaves on flat regions (~1e-14); magnitudes at or
	// below it do not participate in auto-thresholding.
	cannyMagnitudeEpsilon = 1e-9
)

// CannyOptions controls thresholding. Nil Low/High means unset.
//
// With AutoThreshold and either bound unset, low and high are derived from
// the 50th and 85th percentiles of the non-zero suppressed gradient
// magnitudes. Explicit values are used as-is, with unset ones defaulting to
// 100 and 200.
type CannyOptions struct {
	Low           *float64
	High          *float64
	AutoThreshold bool
}

// Canny applies Canny edge detection, a five-stage pipeline with no branching
// back between stages:
//
//  1. Gaussian smoothing (sigma=1.4, 5x5 kernel, fixed)
//  2. Sobel gradients: magnitude and direction (atan2, radians)
//  3. Non-maximum suppression along the quantized gradient orientation
//  4. Double thresholding (auto percentile-based or manual)
//  5. Hysteresis edge tracking (8-connected weak-edge promotion)
//
// The output is binary: every pixel is either 0 or 255.
func Canny(img *Buffer, opts CannyOptions) (*Buffer, error) {
	start := time.Now()

	smoothed, err := Convolve(img.toDense(), GaussianKernel(DefaultGaussianKernelSize, DefaultGaussianSigma))
	if err != nil {
		return nil, err
	}

	gx, err := Convolve(smoothed, SobelX())
	if err != nil {
		return nil, err
	}
	gy, err := Convolve(smoothed, SobelY())
	if err != nil {
		return nil, err
	}
	magnitude := gradientMagnitude(gx, gy)
	direction := gradientDirection(gx, gy)

	suppressed := nonMaxSuppress(magnitude, direction)

	var low, high float64
	switch {
	case opts.AutoThreshold && (opts.Low == nil || opts.High == nil):
		low, high = autoThreshold(suppressed)
		log.WithFields(logrus.Fields{"low": low, "high": high}).Info("Canny auto-computed thresholds")
	default:
		low, high = cannyDefaultLow, cannyDefaultHigh
		if opts.Low != nil {
			low = *opts.Low
		}
		if opts.High != nil {
			high = *opts.High
		}
		log.WithFields(logrus.Fields{"low": low, "high": high}).Info("Canny manual thresholds")
	}

	strong, weak := doubleThreshold(suppressed, low, high)
	out := trackEdges(strong, weak, img.W, img.H)

	edges := 0
	for _, v := range out.Pix {
		if v != 0 {
			edges++
		}
	}
	log.WithFields(logrus.Fields{
		"filter":      "canny",
		"width":       img.W,
		"height":      img.H,
		"edge_pixels": edges,
		"elapsed":     time.Since(start),
	}).Info("Canny edge detection complete")
	return out, nil
}

// gradientDirection computes atan2(gy, gx) per pixel, in radians.
func gradientDirection(gx, gy *mat.Dense) *mat.Dense {
	h, w := gx.Dims()
	out := mat.NewDense(h, w, nil)
	xr, yr, or := gx.RawMatrix(), gy.RawMatrix(), out.RawMatrix()
	for y := 0; y < h; y++ {
		xs := xr.Data[y*xr.Stride : y*xr.Stride+w]
		ys := yr.Data[y*yr.Stride : y*yr.Stride+w]
		os := or.Data[y*or.Stride : y*or.Stride+w]
		for x := 0; x < w; x++ {
			os[x] = math.Atan2(ys[x], xs[x])
		}
	}
	return out
}

// nonMaxSuppress thins the gradient map to local maxima. The direction is
// quantized modulo 180 degrees into four orientation buckets with half-open
// bins ([0,22.5) and [157.5,180] map to horizontal, and so on); the pixel
// survives only if its magnitude is >= both neighbors across its bucket.
// Border pixels stay zero; suppression applies to the interior only.
func nonMaxSuppress(magnitude, direction *mat.Dense) *mat.Dense {
	h, w := magnitude.Dims()
	out := mat.NewDense(h, w, nil)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			angle := math.Mod(direction.At(y, x)*180/math.Pi, 180)
			if angle < 0 {
				angle += 180
			}

			var n1, n2 float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				n1 = magnitude.At(y, x+1)
				n2 = magnitude.At(y, x-1)
			case angle < 67.5:
				n1 = magnitude.At(y+1, x-1)
				n2 = magnitude.At(y-1, x+1)
			case angle < 112.5:
				n1 = magnitude.At(y+1, x)
				n2 = magnitude.At(y-1, x)
			default:
				n1 = magnitude.At(y-1, x-1)
				n2 = magnitude.At(y+1, x+1)
			}

			if m := magnitude.At(y, x); m >= n1 && m >= n2 {
				out.Set(y, x, m)
			}
		}
	}
	return out
}

// autoThreshold derives (low, high) from the 50th and 85th percentiles of
// the meaningful suppressed magnitudes (noise below cannyMagnitudeEpsilon is
// ignored), using linear interpolation between order statistics, truncated
// to integers. With no magnitudes to work from it falls back to the fixed
// defaults; if the truncated percentiles collapse (high <= low) high is
// forced to 2*low, and should that still not separate them (low truncated
// to 0) the defaults are used.
//
// The returned pair always satisfies high > low.
func autoThreshold(suppressed *mat.Dense) (low, high float64) {
	h, w := suppressed.Dims()
	raw := suppressed.RawMatrix()
	values := make([]float64, 0, h*w/4)
	for y := 0; y < h; y++ {
		for _, v := range raw.Data[y*raw.Stride : y*raw.Stride+w] {
			if v > cannyMagnitudeEpsilon {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		log.Warn("Canny auto-threshold: no gradients found, using defaults")
		return cannyDefaultLow, cannyDefaultHigh
	}

	sort.Float64s(values)
	low = math.Trunc(stat.Quantile(cannyAutoLowPercentile, stat.LinInterp, values, nil))
	high = math.Trunc(stat.Quantile(cannyAutoHighPercentile, stat.LinInterp, values, nil))
	if high <= low {
		high = low * 2
		log.WithField("high", high).Warn("Canny auto-threshold: high <= low, doubled low")
	}
	if high <= low {
		log.Warn("Canny auto-threshold: degenerate magnitudes, using defaults")
		return cannyDefaultLow, cannyDefaultHigh
	}
	return low, high
}

// doubleThreshold classifies every pixel: strong if magnitude >= high, weak
// if low <= magnitude < high, suppressed otherwise. The masks use 255 for
// membership.
func doubleThreshold(suppressed *mat.Dense, low, high float64) (strong, weak []uint8) {
	h, w := suppressed.Dims()
	strong = make([]uint8, h*w)
	weak = make([]uint8, h*w)
	raw := suppressed.RawMatrix()
	for y := 0; y < h; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+w]
		for x, v := range row {
			switch {
			case v >= high:
				strong[y*w+x] = 255
			case v >= low:
				weak[y*w+x] = 255
			}
		}
	}
	return strong, weak
}

// trackEdges promotes weak pixels that touch a confirmed edge through any of
// their 8 neighbors, sweeping the interior until a full pass changes nothing
// or hysteresisMaxPasses is reached.
func trackEdges(strong, weak []uint8, w, h int) *Buffer {
	out := &Buffer{W: w, H: h, Pix: make([]uint8, w*h)}
	copy(out.Pix, strong)

	neighbors := [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	for pass := 0; pass < hysteresisMaxPasses; pass++ {
		changed := false
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				if weak[i] != 255 || out.Pix[i] != 0 {
					continue
				}
				for _, d := range neighbors {
					if out.Pix[(y+d[0])*w+x+d[1]] == 255 {
						out.Pix[i] = 255
						changed = true
						break
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	return out
}
