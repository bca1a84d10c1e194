package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logDir      = "logs"
	logFileName = "vi-boids.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a file-backed logger with -debug, a no-op logger otherwise
// Nothing is ever written to stdout or stderr while the screen is active
func setupLogging(debug bool) (*zap.Logger, *os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("vi-boids-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return zap.NewNop(), nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil, fmt.Errorf("open log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	logger := zap.New(fileCore, zap.AddCaller())

	// Library code using the standard logger lands in the same file
	zap.RedirectStdLog(logger)
	return logger, f, nil
}
