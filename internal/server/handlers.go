package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/detect"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/imaging"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/medinfo"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/store"
)

// thumbnailMaxSide bounds the preview rendered at upload time.
const thumbnailMaxSide = 512

// UploadResponse describes a stored upload.
type UploadResponse struct {
	ImageID         string `json:"image_id"`
	Filename        string `json:"filename"`
	SizeBytes       int    `json:"size_bytes"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Format          string `json:"format"`
	UploadTimestamp string `json:"upload_timestamp"`
	ThumbnailBase64 string `json:"thumbnail_base64,omitempty"`
}

// FilterListResponse lists the available filters with bilingual metadata.
type FilterListResponse struct {
	Filters []filter.Descriptor `json:"filters"`
}

// FilterApplyRequest selects filters to run against an uploaded image.
type FilterApplyRequest struct {
	ImageID string   `json:"image_id"`
	Filters []string `json:"filters"`
}

// ProcessedImage is one filter's outcome within an apply batch. Exactly one
// of ImageBase64 or Error is populated.
type ProcessedImage struct {
	FilterName       string `json:"filter_name"`
	DisplayName      string `json:"display_name"`
	OutputType       string `json:"output_type"`
	ImageBase64      string `json:"image_base64,omitempty"`
	ColormapBase64   string `json:"colormap_base64,omitempty"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
	Error            string `json:"error,omitempty"`
}

// FilterApplyResponse carries the batch results; sibling filters are
// isolated, so partial failure still returns HTTP 200.
type FilterApplyResponse struct {
	RequestID   string           `json:"request_id"`
	Results     []ProcessedImage `json:"results"`
	TotalTimeMS int64            `json:"total_time_ms"`
}

// DetectionRequest selects an uploaded image for abnormality analysis.
type DetectionRequest struct {
	ImageID           string `json:"image_id"`
	DrawLowConfidence bool   `json:"draw_low_confidence"`
}

// DetectionResponse carries detections plus the annotated image.
type DetectionResponse struct {
	Success          bool               `json:"success"`
	IsNormal         bool               `json:"is_normal"`
	Detections       []detect.Detection `json:"detections"`
	AnnotatedImage   string             `json:"annotated_image"`
	ProcessingTimeMS int64              `json:"processing_time_ms"`
	NumDetections    int                `json:"num_detections"`
}

// DetectHealthResponse reports the readiness of the detection model.
type DetectHealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelPath   string `json:"model_path"`
	Detail      string `json:"detail,omitempty"`
}

// ErrorResponse is the uniform error envelope: a stable code plus a message
// localized from the request's Accept-Language header.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Chest X-Ray Abnormality Detection API",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSizeBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxFileSizeBytes); err != nil {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_FORMAT", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		return
	}

	img, info, err := imaging.DecodeGray(data, s.cfg.MinImageDimension, s.cfg.MaxImageDimension)
	if err != nil {
		var verr *imaging.ValidationError
		if errors.As(err, &verr) {
			s.writeError(w, r, http.StatusBadRequest, verr.Code, verr.Detail)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, "CORRUPTED_IMAGE", err.Error())
		return
	}

	now := time.Now().UTC()
	id := s.images.Put(img, store.Meta{
		Filename:  header.Filename,
		SizeBytes: len(data),
		Width:     info.Width,
		Height:    info.Height,
		Format:    info.Format,
		Uploaded:  now,
	})

	thumb, err := imaging.Thumbnail(img, thumbnailMaxSide)
	if err != nil {
		// The stored image is fine; only the preview failed.
		s.log.WithError(err).Warn("Thumbnail generation failed")
		thumb = ""
	}

	s.writeJSON(w, http.StatusOK, UploadResponse{
		ImageID:         id,
		Filename:        header.Filename,
		SizeBytes:       len(data),
		Width:           info.Width,
		Height:          info.Height,
		Format:          info.Format,
		UploadTimestamp: now.Format(time.RFC3339),
		ThumbnailBase64: thumb,
	})
}

func (s *Server) handleFilterList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, FilterListResponse{Filters: s.registry.List()})
}

func (s *Server) handleFilterApply(w http.ResponseWriter, r *http.Request) {
	var req FilterApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "PROCESSING_FAILED", err.Error())
		return
	}
	if len(req.Filters) == 0 {
		s.writeError(w, r, http.StatusBadRequest, "NO_FILTERS_SELECTED", nil)
		return
	}
	for _, id := range req.Filters {
		if _, ok := s.registry.Lookup(id); !ok {
			s.writeError(w, r, http.StatusNotFound, "FILTER_NOT_FOUND",
				(&filter.UnknownFilterError{ID: id, Available: s.registry.IDs()}).Error())
			return
		}
	}

	img, _, ok := s.images.Get(req.ImageID)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_IMAGE_ID", req.ImageID)
		return
	}

	start := time.Now()
	results := make([]ProcessedImage, 0, len(req.Filters))
	for _, res := range s.registry.ApplyMany(req.Filters, img) {
		desc, _ := s.registry.Lookup(res.ID)
		item := ProcessedImage{
			FilterName:       res.ID,
			DisplayName:      desc.Name,
			OutputType:       string(desc.OutputType),
			ProcessingTimeMS: res.Elapsed.Milliseconds(),
		}
		switch {
		case res.Err != nil:
			item.Error = res.Err.Error()
		default:
			encoded, err := imaging.EncodeBase64PNG(res.Out)
			if err != nil {
				item.Error = err.Error()
				break
			}
			item.ImageBase64 = encoded
			if desc.OutputType == filter.OutputSpectrum {
				if cm, err := imaging.EncodeImageBase64PNG(imaging.SpectrumColormap(res.Out)); err == nil {
					item.ColormapBase64 = cm
				}
			}
		}
		results = append(results, item)
	}

	s.writeJSON(w, http.StatusOK, FilterApplyResponse{
		RequestID:   newRequestID(),
		Results:     results,
		TotalTimeMS: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "DETECTION_FAILED", err.Error())
		return
	}

	img, _, ok := s.images.Get(req.ImageID)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_IMAGE_ID", req.ImageID)
		return
	}

	start := time.Now()
	result, err := s.detector.Analyze(img)
	if err != nil {
		if errors.Is(err, detect.ErrModelNotAvailable) {
			s.writeError(w, r, http.StatusServiceUnavailable, "MODEL_NOT_LOADED", nil)
			return
		}
		s.log.WithError(err).Error("Detection failed")
		s.writeError(w, r, http.StatusInternalServerError, "DETECTION_FAILED", err.Error())
		return
	}

	annotated, err := imaging.EncodeImageBase64PNG(detect.Annotate(img, result.Detections, req.DrawLowConfidence))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "DETECTION_FAILED", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, DetectionResponse{
		Success:          true,
		IsNormal:         result.IsNormal,
		Detections:       result.Detections,
		AnnotatedImage:   annotated,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		NumDetections:    len(result.Detections),
	})
}

func (s *Server) handleDetectHealth(w http.ResponseWriter, r *http.Request) {
	resp := DetectHealthResponse{
		Status:      "healthy",
		ModelLoaded: true,
		ModelPath:   s.cfg.ModelPath,
	}
	if err := s.detector.Ready(); err != nil {
		resp.Status = "model_unavailable"
		resp.ModelLoaded = false
		resp.Detail = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// newRequestID returns a short random hex id correlating batch log entries.
func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code string, details any) {
	lang := medinfo.MatchLanguage(r.Header.Get("Accept-Language"))
	s.writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: medinfo.Message(code, lang),
		Details: details,
	})
}
