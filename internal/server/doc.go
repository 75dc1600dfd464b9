// Package server implements the HTTP API for the chest X-ray backend.
//
// # Endpoints
//
//	GET  /                    service banner
//	GET  /health              liveness probe
//	POST /api/upload          multipart image upload -> session id + preview
//	GET  /api/filters         bilingual filter descriptor list
//	POST /api/filters/apply   apply one or more filters to an uploaded image
//	POST /api/detect/analyze  run abnormality detection on an uploaded image
//	GET  /api/detect/health   detection model readiness
//
// # Failure Isolation
//
// A multi-filter apply never aborts sibling filters: each result carries its
// own error field and the response reports partial success with HTTP 200.
//
// # Localization
//
// User-facing error messages are selected from the request's Accept-Language
// header (English or Vietnamese); the stable error code is always included
// so clients can branch on it.
//
// # Timeouts
//
// Filter and detection calls are synchronous and not cancellable
// mid-computation; the server bounds request lifetime with write timeouts
// rather than interrupting the core.
package server
