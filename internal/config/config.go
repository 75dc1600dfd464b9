// Package config holds the process settings for the X-ray backend. Defaults
// mirror the deployment the application was tuned for; every value can be
// overridden through an XRAY_-prefixed environment variable.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings is the full process configuration, read once at startup and
// treated as read-only afterwards.
type Settings struct {
	// HTTP server.
	Host        string
	Port        int
	CORSOrigins []string

	// Upload constraints.
	MaxFileSizeBytes  int64
	MinImageDimension int
	MaxImageDimension int

	// Session store.
	SessionTTL time.Duration

	// Detection model.
	ModelPath           string
	ConfidenceThreshold float64

	// Logging.
	LogLevel string
}

// Load builds Settings from defaults plus environment overrides.
func Load() Settings {
	return Settings{
		Host: getString("XRAY_HOST", "0.0.0.0"),
		Port: getInt("XRAY_PORT", 8000),
		CORSOrigins: getStrings("XRAY_CORS_ORIGINS",
			[]string{"http://localhost:8501", "http://127.0.0.1:8501"}),

		MaxFileSizeBytes:  int64(getInt("XRAY_MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,
		MinImageDimension: getInt("XRAY_MIN_IMAGE_DIMENSION", 1),
		MaxImageDimension: getInt("XRAY_MAX_IMAGE_DIMENSION", 2048),

		SessionTTL: time.Duration(getInt("XRAY_SESSION_TIMEOUT_MINUTES", 30)) * time.Minute,

		ModelPath:           getString("XRAY_MODEL_PATH", "models/best.onnx"),
		ConfidenceThreshold: getFloat("XRAY_CONFIDENCE_THRESHOLD", 0.4),

		LogLevel: getString("XRAY_LOG_LEVEL", "info"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getStrings(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
