// Package imaging handles image I/O at the edges of the filter core: decoding
// and validating uploaded X-ray files into single-channel buffers, encoding
// result buffers back to base64 PNG for the HTTP API, generating preview
// thumbnails, and rendering spectrum outputs through a perceptual colormap.
//
// The filter core itself only deals in raw pixel buffers; everything
// format- or wire-related lives here.
//
// # Validation
//
// DecodeGray enforces the upload contract: PNG or JPEG only, intact data,
// and both dimensions within the configured bounds. Violations surface as
// *ValidationError values carrying a stable code the API layer maps to
// localized user-facing messages.
//
// # Grayscale Conversion
//
// Color uploads are converted to single-channel intensity using ITU-R BT.601
// luminance weights (0.299 R + 0.587 G + 0.114 B).
package imaging
