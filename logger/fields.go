package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across the launcher.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Files and paths
	FieldPath        = "path"
	FieldRoot        = "root"
	FieldDir         = "dir"
	FieldInterpreter = "interpreter"

	// Search state
	FieldModuleDirs = "module_dirs"
	FieldExecDirs   = "exec_dirs"
	FieldVenv       = "venv"

	// Entry point
	FieldModule   = "module"
	FieldCallable = "callable"

	// Process
	FieldExitCode = "exit_code"
	FieldArgs     = "args"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type ServerResolver struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewServerResolver() *ServerResolver {
//	    return &ServerResolver{
//	        log: logger.ComponentLogger("entry.resolver"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	rootLogger := logger.ChildLogger(baseLogger, "root", root)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
