// Package filter implements the image-processing core for the chest X-ray
// backend: eight pixel-level transforms built from first principles over raw
// grayscale buffers, plus the 2D convolution engine and kernel generators
// they share.
//
// # Filters
//
//   - Sobel edge detection (3x3 gradient kernels, min-max normalized magnitude)
//   - Canny edge detection (Gaussian smoothing, non-maximum suppression,
//     percentile-based double thresholding, hysteresis edge tracking)
//   - Gaussian blur (generated unit-sum kernel, sigma=1.4, 5x5 by default)
//   - Median filter (5x5 window, sliding-histogram median)
//   - Histogram equalization (CDF remapping)
//   - Fourier magnitude spectrum (2D FFT, centered, log-scaled)
//   - Discrete cosine transform visualization (separable DCT-II)
//   - Otsu thresholding (maximum inter-class variance)
//
// All filters consume a single-channel 8-bit Buffer and return a new Buffer
// of the same height and width. Inputs are never mutated.
//
// # Data Model
//
// Buffer stores pixels row-major with (0,0) at the top-left corner. Float
// working grids use gonum mat.Dense; the convolution engine operates on
// those and leaves clipping or normalization back to 8 bits to callers.
//
// # Degenerate Inputs
//
// Uniform images, all-zero gradient maps and single-intensity images are not
// errors. Each filter documents an explicit fallback (all-zero output or
// pass-through) instead of dividing by zero.
//
// # Concurrency
//
// Every operation is a synchronous pure function over caller-owned buffers.
// There is no shared mutable state, so filters may be invoked concurrently
// from multiple goroutines. The Registry descriptor table is read-only after
// construction.
//
// # Memory
//
// Convolution materializes one padded float copy of the input, roughly
// (H+K)x(W+K) float64 samples. The median filter uses a constant-size
// 256-bin sliding histogram instead of materializing every window, so it
// stays within a few megabytes even for 2048x2048 inputs.
package filter
