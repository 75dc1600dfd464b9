//go:build !cgo

package detect

import (
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

// stubBackend stands in when the binary is built without CGO (no OpenCV).
// Loading and inference both report the model as unavailable; the API layer
// surfaces this as a localized MODEL_NOT_LOADED error.
type stubBackend struct{}

func newBackend() backend {
	return stubBackend{}
}

func (stubBackend) load(string) error {
	return ErrModelNotAvailable
}

func (stubBackend) predict(*filter.Buffer, float64) ([]rawDetection, error) {
	return nil, ErrModelNotAvailable
}
