package filter

import (
	"time"

	"github.com/sirupsen/logrus"
)

// OutputType tags what kind of image a filter produces.
type OutputType string

const (
	OutputGrayscale OutputType = "grayscale"
	OutputBinary    OutputType = "binary"
	OutputSpectrum  OutputType = "spectrum"
)

// Descriptor is the immutable metadata for one registered filter: bilingual
// display strings, the fixed parameter set shown to API clients, and the
// output-type tag. Descriptors are built once at registry construction and
// never mutated.
type Descriptor struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	NameVI        string         `json:"name_vi"`
	Description   string         `json:"description"`
	DescriptionVI string         `json:"description_vi"`
	Parameters    map[string]any `json:"parameters"`
	OutputType    OutputType     `json:"output_type"`

	apply func(*Buffer, Overrides) (*Buffer, error)
}

// Overrides carries optional per-call parameter overrides; nil fields keep a
// filter's fixed defaults. Fields that a filter does not use are ignored.
type Overrides struct {
	Sigma         *float64
	KernelSize    *int
	WindowSize    *int
	LowThreshold  *float64
	HighThreshold *float64
	AutoThreshold *bool
}

// BatchResult is the outcome of one filter within a multi-filter batch.
type BatchResult struct {
	ID      string
	Out     *Buffer
	Err     error
	Elapsed time.Duration
}

// Registry dispatches filter application by string id. The descriptor table
// is fixed at construction, so a Registry is safe for concurrent use.
type Registry struct {
	order   []string
	filters map[string]*Descriptor
}

// NewRegistry builds the registry with the eight built-in filters in their
// canonical order.
func NewRegistry() *Registry {
	descriptors := []*Descriptor{
		{
			ID:            "sobel",
			Name:          "Sobel Edge Detection",
			NameVI:        "Phát hiện cạnh Sobel",
			Description:   "Detects edges using Sobel operator with 3x3 kernels",
			DescriptionVI: "Phát hiện cạnh bằng toán tử Sobel với nhân 3x3",
			Parameters:    map[string]any{},
			OutputType:    OutputGrayscale,
			apply: func(img *Buffer, _ Overrides) (*Buffer, error) {
				return Sobel(img)
			},
		},
		{
			ID:            "canny",
			Name:          "Canny Edge Detection",
			NameVI:        "Phát hiện cạnh Canny",
			Description:   "Advanced edge detection with non-maximum suppression and hysteresis",
			DescriptionVI: "Phát hiện cạnh nâng cao với triệt tiêu cực đại và trễ",
			Parameters: map[string]any{
				"low_threshold":  nil,
				"high_threshold": nil,
				"auto_threshold": true,
			},
			OutputType: OutputBinary,
			apply: func(img *Buffer, ov Overrides) (*Buffer, error) {
				opts := CannyOptions{
					Low:           ov.LowThreshold,
					High:          ov.HighThreshold,
					AutoThreshold: true,
				}
				if ov.AutoThreshold != nil {
					opts.AutoThreshold = *ov.AutoThreshold
				}
				return Canny(img, opts)
			},
		},
		{
			ID:            "gaussian",
			Name:          "Gaussian Blur",
			NameVI:        "Làm mờ Gaussian",
			Description:   "Smoothing filter using Gaussian kernel (sigma=1.4)",
			DescriptionVI: "Bộ lọc làm mịn bằng nhân Gaussian (sigma=1.4)",
			Parameters: map[string]any{
				"sigma":       DefaultGaussianSigma,
				"kernel_size": DefaultGaussianKernelSize,
			},
			OutputType: OutputGrayscale,
			apply: func(img *Buffer, ov Overrides) (*Buffer, error) {
				sigma := DefaultGaussianSigma
				size := DefaultGaussianKernelSize
				if ov.Sigma != nil {
					sigma = *ov.Sigma
				}
				if ov.KernelSize != nil {
					size = *ov.KernelSize
				}
				return Gaussian(img, sigma, size)
			},
		},
		{
			ID:            "median",
			Name:          "Median Filter",
			NameVI:        "Bộ lọc trung vị",
			Description:   "Noise reduction using 5x5 median filtering",
			DescriptionVI: "Giảm nhiễu bằng lọc trung vị 5x5",
			Parameters: map[string]any{
				"window_size": DefaultMedianWindow,
			},
			OutputType: OutputGrayscale,
			apply: func(img *Buffer, ov Overrides) (*Buffer, error) {
				window := DefaultMedianWindow
				if ov.WindowSize != nil {
					window = *ov.WindowSize
				}
				return Median(img, window)
			},
		},
		{
			ID:            "histogram",
			Name:          "Histogram Equalization",
			NameVI:        "Cân bằng Histogram",
			Description:   "Contrast enhancement using histogram equalization",
			DescriptionVI: "Tăng cường độ tương phản bằng cân bằng histogram",
			Parameters:    map[string]any{},
			OutputType:    OutputGrayscale,
			apply: func(img *Buffer, _ Overrides) (*Buffer, error) {
				return EqualizeHistogram(img)
			},
		},
		{
			ID:            "fourier",
			Name:          "Fourier Transform",
			NameVI:        "Biến đổi Fourier",
			Description:   "Frequency domain visualization using 2D FFT",
			DescriptionVI: "Trực quan hóa miền tần số bằng FFT 2D",
			Parameters:    map[string]any{},
			OutputType:    OutputSpectrum,
			apply: func(img *Buffer, _ Overrides) (*Buffer, error) {
				return FourierSpectrum(img)
			},
		},
		{
			ID:            "dct",
			Name:          "Discrete Cosine Transform",
			NameVI:        "Biến đổi Cosine rời rạc",
			Description:   "DCT coefficient visualization (used in JPEG compression)",
			DescriptionVI: "Trực quan hóa hệ số DCT (dùng trong nén JPEG)",
			Parameters:    map[string]any{},
			OutputType:    OutputSpectrum,
			apply: func(img *Buffer, _ Overrides) (*Buffer, error) {
				return DCTSpectrum(img)
			},
		},
		{
			ID:            "otsu",
			Name:          "Otsu Thresholding",
			NameVI:        "Ngưỡng Otsu",
			Description:   "Automatic binary segmentation using Otsu's method",
			DescriptionVI: "Phân đoạn nhị phân tự động bằng phương pháp Otsu",
			Parameters:    map[string]any{},
			OutputType:    OutputBinary,
			apply: func(img *Buffer, _ Overrides) (*Buffer, error) {
				return Otsu(img)
			},
		},
	}

	r := &Registry{filters: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		r.order = append(r.order, d.ID)
		r.filters[d.ID] = d
	}
	return r
}

// List returns descriptors for every registered filter, in registration
// order. The returned slice is a copy; the registry itself stays immutable.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.filters[id])
	}
	return out
}

// IDs returns the registered filter ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the descriptor for id, or false if it is not registered.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	d, ok := r.filters[id]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Apply dispatches to the filter registered under id, merging its fixed
// parameters with any overrides. Returns an *UnknownFilterError naming the
// valid ids when id is not registered.
func (r *Registry) Apply(id string, img *Buffer, ov Overrides) (*Buffer, error) {
	d, ok := r.filters[id]
	if !ok {
		return nil, &UnknownFilterError{ID: id, Available: r.IDs()}
	}

	log.WithFields(logrus.Fields{"filter": id, "name": d.Name}).Info("Applying filter")
	return d.apply(img, ov)
}

// ApplyMany applies several filters to the same input, isolating failures:
// one filter's error never aborts its siblings. Results are returned in the
// requested order.
func (r *Registry) ApplyMany(ids []string, img *Buffer) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		start := time.Now()
		out, err := r.Apply(id, img, Overrides{})
		if err != nil {
			log.WithFields(logrus.Fields{"filter": id}).WithError(err).Error("Filter failed")
		}
		results = append(results, BatchResult{ID: id, Out: out, Err: err, Elapsed: time.Since(start)})
	}
	return results
}
