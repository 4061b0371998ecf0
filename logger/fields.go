package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across castxml.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldStart     = "start"
	FieldPass      = "pass"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount     = "count"
	FieldNodes     = "nodes"
	FieldFiles     = "files"
	FieldQueueSize = "queue_size"

	// Files and compilers
	FieldFile     = "file"
	FieldCompiler = "compiler"
	FieldTriple   = "triple"
	FieldFormat   = "format"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("detect")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	runLogger := logger.ChildLogger(baseLogger, logger.FieldRunID, id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
