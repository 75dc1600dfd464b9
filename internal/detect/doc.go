// Package detect wraps the YOLO abnormality-detection model for chest X-ray
// images: loading the ONNX weights, running inference with confidence
// filtering and non-maximum suppression, classifying detections into
// confidence tiers, enriching them with bilingual labels and health
// guidance, and rendering an annotated copy of the input.
//
// # Build Modes
//
// Inference uses OpenCV's DNN module through gocv, which requires CGO and an
// OpenCV installation. On builds without CGO the detector compiles to a stub
// whose Predict returns ErrModelNotAvailable; the rest of the package
// (tiers, enrichment, annotation) is pure Go and always available.
//
// # Confidence Tiers
//
//   - high: confidence > 0.70, drawn as a solid red bounding box
//   - medium: 0.40 <= confidence <= 0.70, drawn as a dashed orange bounding box
//   - low: confidence < 0.40, hidden unless explicitly requested
package detect
