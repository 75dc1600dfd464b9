//go:build cgo

package detect

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/medinfo"
)

// nmsThreshold is the IoU cutoff for non-maximum suppression over the raw
// model candidates.
const nmsThreshold = 0.45

// yoloBackend runs the ONNX model through OpenCV's DNN module.
type yoloBackend struct {
	net gocv.Net
}

func newBackend() backend {
	return &yoloBackend{}
}

func (b *yoloBackend) load(modelPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model weights not found at %s: %w", modelPath, err)
	}
	b.net = gocv.ReadNetFromONNX(modelPath)
	if b.net.Empty() {
		return fmt.Errorf("failed to load ONNX model from %s", modelPath)
	}
	return nil
}

// predict runs one forward pass. The grayscale buffer is expanded to RGB,
// resized by the blob to InputSize x InputSize, and the YOLO output tensor
// (1 x (4+classes) x candidates) is decoded: center-format boxes are scaled
// back to input-image coordinates, candidates below confThreshold are
// dropped, and overlapping candidates are merged with NMS.
func (b *yoloBackend) predict(img *filter.Buffer, confThreshold float64) ([]rawDetection, error) {
	mat, err := gocv.ImageToMatRGB(grayToRGBA(img))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image for inference: %w", err)
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(InputSize, InputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	b.net.SetInput(blob, "")
	output := b.net.Forward("")
	defer output.Close()

	dims := output.Size()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected model output shape %v", dims)
	}
	rows, cols := dims[1], dims[2]
	numClasses := rows - 4
	if numClasses < 1 || numClasses != medinfo.ClassCount() {
		return nil, fmt.Errorf("model reports %d classes, expected %d", numClasses, medinfo.ClassCount())
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read model output: %w", err)
	}

	scaleX := float32(img.W) / float32(InputSize)
	scaleY := float32(img.H) / float32(InputSize)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for i := 0; i < cols; i++ {
		bestClass := 0
		bestScore := float32(0)
		for c := 0; c < numClasses; c++ {
			if s := data[(4+c)*cols+i]; s > bestScore {
				bestScore = s
				bestClass = c
			}
		}
		if float64(bestScore) < confThreshold {
			continue
		}

		cx := data[0*cols+i] * scaleX
		cy := data[1*cols+i] * scaleY
		bw := data[2*cols+i] * scaleX
		bh := data[3*cols+i] * scaleY

		boxes = append(boxes, image.Rect(
			int(cx-bw/2), int(cy-bh/2),
			int(cx+bw/2), int(cy+bh/2),
		))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	keep := gocv.NMSBoxes(boxes, scores, float32(confThreshold), nmsThreshold)
	detections := make([]rawDetection, 0, len(keep))
	for _, idx := range keep {
		r := boxes[idx].Intersect(image.Rect(0, 0, img.W, img.H))
		detections = append(detections, rawDetection{
			classID:    classIDs[idx],
			confidence: float64(scores[idx]),
			bbox:       BBox{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		})
	}
	return detections, nil
}
