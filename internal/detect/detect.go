package detect

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/medinfo"
)

// Confidence thresholds governing detection display.
const (
	DefaultConfidenceThreshold = 0.4
	ConfidenceHigh             = 0.7

	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// InputSize is the square input resolution the YOLO model expects.
const InputSize = 640

// ErrModelNotAvailable is returned when inference is requested but no model
// backend is present (CGO disabled) or the weights failed to load.
var ErrModelNotAvailable = errors.New("detection model not available")

// BBox is a detection bounding box in input-image pixel coordinates,
// (x1, y1) inclusive top-left and (x2, y2) exclusive bottom-right.
type BBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Detection is one detected abnormality, enriched with bilingual labels and
// health guidance.
type Detection struct {
	ClassID           int     `json:"class_id"`
	ClassNameEN       string  `json:"class_name_en"`
	ClassNameVI       string  `json:"class_name_vi"`
	Confidence        float64 `json:"confidence"`
	ConfidenceTier    string  `json:"confidence_tier"`
	BBox              BBox    `json:"bbox"`
	HealthDescription string  `json:"health_description"`
	HealthWarning     string  `json:"health_warning"`
}

// Result is a full analysis of one image.
type Result struct {
	IsNormal      bool          `json:"is_normal"`
	Detections    []Detection   `json:"detections"`
	InferenceTime time.Duration `json:"-"`
}

// rawDetection is what the model backend produces before enrichment.
type rawDetection struct {
	classID    int
	confidence float64
	bbox       BBox
}

// backend abstracts the inference engine so the package builds with or
// without CGO.
type backend interface {
	load(modelPath string) error
	predict(img *filter.Buffer, confThreshold float64) ([]rawDetection, error)
}

// Detector wraps the YOLO model: lazy single-flight loading, inference,
// tier classification and enrichment. Safe for concurrent use.
type Detector struct {
	modelPath     string
	confThreshold float64
	log           logrus.FieldLogger

	mu      sync.Mutex
	backend backend
	loaded  bool
}

// New creates a detector for the given ONNX weights. The model is loaded on
// first use, not here.
func New(modelPath string, confThreshold float64, log logrus.FieldLogger) *Detector {
	if confThreshold <= 0 {
		confThreshold = DefaultConfidenceThreshold
	}
	return &Detector{
		modelPath:     modelPath,
		confThreshold: confThreshold,
		log:           log,
		backend:       newBackend(),
	}
}

// ensureLoaded loads the model exactly once.
func (d *Detector) ensureLoaded() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}
	start := time.Now()
	if err := d.backend.load(d.modelPath); err != nil {
		return err
	}
	d.loaded = true
	d.log.WithFields(logrus.Fields{
		"model_path": d.modelPath,
		"elapsed":    time.Since(start),
	}).Info("Detection model loaded")
	return nil
}

// Ready reports whether the model can serve inference, performing the lazy
// load on first call just as Analyze does. A nil return means the model is
// loaded and ready.
func (d *Detector) Ready() error {
	return d.ensureLoaded()
}

// Analyze runs abnormality detection on a grayscale X-ray buffer and returns
// the enriched detections. IsNormal is true when nothing clears the
// confidence threshold.
func (d *Detector) Analyze(img *filter.Buffer) (*Result, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := d.backend.predict(img, d.confThreshold)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	detections := make([]Detection, 0, len(raw))
	for _, r := range raw {
		detections = append(detections, enrich(r))
	}

	d.log.WithFields(logrus.Fields{
		"detections": len(detections),
		"elapsed":    elapsed,
	}).Info("YOLO inference complete")
	for _, det := range detections {
		d.log.WithFields(logrus.Fields{
			"class":      det.ClassNameEN,
			"confidence": det.Confidence,
			"tier":       det.ConfidenceTier,
		}).Debug("Detection")
	}

	return &Result{
		IsNormal:      len(detections) == 0,
		Detections:    detections,
		InferenceTime: elapsed,
	}, nil
}

// ClassifyTier maps a confidence score to its display tier.
func ClassifyTier(confidence float64) string {
	switch {
	case confidence > ConfidenceHigh:
		return TierHigh
	case confidence >= DefaultConfidenceThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// enrich attaches bilingual labels, the confidence tier and health guidance
// to a raw model detection.
func enrich(r rawDetection) Detection {
	nameEN := "Unknown"
	if c, ok := medinfo.ClassByID(r.classID); ok {
		nameEN = c.NameEN
	}
	info, _ := medinfo.GetHealthInfo(nameEN)
	return Detection{
		ClassID:           r.classID,
		ClassNameEN:       nameEN,
		ClassNameVI:       medinfo.VietnameseName(nameEN),
		Confidence:        r.confidence,
		ConfidenceTier:    ClassifyTier(r.confidence),
		BBox:              r.bbox,
		HealthDescription: info.Description,
		HealthWarning:     info.Warning,
	}
}
