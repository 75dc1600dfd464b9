package filter

import (
	"fmt"
	"strings"
)

// KernelShapeError reports a convolution kernel with an even dimension.
// Odd sizes are a usage requirement of the convolution engine, so this is a
// caller bug rather than a runtime condition to repair.
type KernelShapeError struct {
	Rows, Cols int
}

func (e *KernelShapeError) Error() string {
	return fmt.Sprintf("kernel must have odd dimensions, got %dx%d", e.Rows, e.Cols)
}

// UnknownFilterError reports a filter id that is not registered. The message
// lists every valid id so API callers can self-correct.
type UnknownFilterError struct {
	ID        string
	Available []string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter: %s. Available: %s", e.ID, strings.Join(e.Available, ", "))
}
