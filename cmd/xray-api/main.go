package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/config"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/detect"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/server"
	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/store"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("xray-api %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("xray-api - chest X-ray filter processing and abnormality detection API")
			fmt.Println()
			fmt.Println("Usage: xray-api [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  XRAY_HOST, XRAY_PORT              Listen address (default 0.0.0.0:8000)")
			fmt.Println("  XRAY_MODEL_PATH                   ONNX detection weights (default models/best.onnx)")
			fmt.Println("  XRAY_SESSION_TIMEOUT_MINUTES      Uploaded-image TTL (default 30)")
			fmt.Println("  XRAY_LOG_LEVEL                    debug|info|warn|error (default info)")
			return
		}
	}

	cfg := config.Load()
	log := initLogger(cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
	}).Info("Starting chest X-ray backend")

	filter.SetLogger(log)

	images := store.New(cfg.SessionTTL)
	defer images.Close()

	registry := filter.NewRegistry()
	detector := detect.New(cfg.ModelPath, cfg.ConfidenceThreshold, log)
	srv := server.New(cfg, log, registry, images, detector)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}

// initLogger configures the process logger: human-readable at debug level,
// JSON otherwise.
func initLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if parsed >= logrus.DebugLevel {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	}
	return log
}
