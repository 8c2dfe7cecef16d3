// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StandardObserver implements observability for all components
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	logger        *zap.Logger
	runID         string
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a sortable unique identifier for one scan run
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	runID := NewRunID()
	return &StandardObserver{
		level:  level,
		writer: writer,
		logger: newLogger(level, writer).With(zap.String("run_id", runID)),
		runID:  runID,
	}
}

// newLogger builds a console logger on writer. Metrics level reports
// warnings and run summaries, debug level everything.
func newLogger(level ObservabilityLevel, writer io.Writer) *zap.Logger {
	if level == ObservabilityOff || writer == nil {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	minLevel := zapcore.InfoLevel
	if level == ObservabilityDebug {
		minLevel = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(writer)),
		zap.NewAtomicLevelAt(minLevel),
	)
	return zap.New(core)
}

// Logger returns the structured logger carrying the run id
func (o *StandardObserver) Logger() *zap.Logger {
	return o.logger
}

// RunID identifies the current run
func (o *StandardObserver) RunID() string {
	return o.runID
}

// Level returns the configured observability level
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		data := StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}

		o.LogOperation(data)
	}
}

// LogOperation logs operation data at debug level
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o.level != ObservabilityDebug {
		return
	}

	fields := []zap.Field{
		zap.String("component", data.Component),
		zap.String("operation", data.Operation),
		zap.Bool("success", data.Success),
	}
	if data.FilePath != "" {
		fields = append(fields, zap.String("file", data.FilePath))
	}
	if data.DurationMs > 0 {
		fields = append(fields, zap.Int64("duration_ms", data.DurationMs))
	}
	if data.Error != "" {
		fields = append(fields, zap.String("error", data.Error))
	}
	if data.HitCount > 0 {
		fields = append(fields, zap.Int("hit_count", data.HitCount))
	}
	if len(data.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", data.Metadata))
	}

	o.logger.Debug("operation", fields...)
}

// LogDocumentFailure records a document that produced a degraded summary row
func (o *StandardObserver) LogDocumentFailure(filePath, cause string, err error) {
	fields := []zap.Field{zap.String("file", filePath), zap.String("cause", cause)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	o.logger.Warn("document produced no text", fields...)
}

// Sync flushes buffered log entries
func (o *StandardObserver) Sync() {
	_ = o.logger.Sync()
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	FilePath   string                 `json:"file_path,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	HitCount   int                    `json:"hit_count,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
