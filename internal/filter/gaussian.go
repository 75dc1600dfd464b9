package filter

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Default Gaussian smoothing parameters, tuned for chest X-ray noise levels.
const (
	DefaultGaussianSigma      = 1.4
	DefaultGaussianKernelSize = 5
)

// Gaussian applies Gaussian blur with the given standard deviation and kernel
// size. An even kernel size is silently treated as the next odd size (the
// kernel generator enforces this). The convolved result is clipped to
// [0, 255]; the kernel is unit-sum so no further normalization is needed.
func Gaussian(img *Buffer, sigma float64, kernelSize int) (*Buffer, error) {
	start := time.Now()

	blurred, err := Convolve(img.toDense(), GaussianKernel(kernelSize, sigma))
	if err != nil {
		return nil, err
	}
	out := clipToBuffer(blurred)

	log.WithFields(logrus.Fields{
		"filter":      "gaussian",
		"width":       img.W,
		"height":      img.H,
		"sigma":       sigma,
		"kernel_size": kernelSize,
		"elapsed":     time.Since(start),
	}).Info("Gaussian blur complete")
	return out, nil
}
