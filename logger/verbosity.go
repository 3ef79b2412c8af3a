package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// These levels control WHAT categories of output are shown, not just log
// severity. See output.go for the full category system.
//
// Example usage:
//
//	if logger.ShouldOutput(verbosity, logger.OutputSearchDetails) {
//	    logger.Debugw("candidate rejected", "path", candidate)
//	}
const (
	VerbosityUser  = 0 // No flags: errors and the failure report only
	VerbosityInfo  = 1 // -v: + chosen roots, interpreter, server start
	VerbosityDebug = 2 // -vv: + every candidate probed, config details, timing
	VerbosityTrace = 3 // -vvv: + rendered child environment, probe output
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel  (+ informational messages)
//	2 (-vv)   -> DebugLevel (+ debug messages)
//	3+ (-vvv) -> DebugLevel (zap doesn't have finer levels, but we track for custom behavior)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	case VerbosityDebug:
		return zapcore.DebugLevel
	default:
		// For any verbosity > VerbosityDebug, use DebugLevel
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace returns true for verbosity >= 3 (-vvv)
// Use this for very detailed trace logging
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}

// LevelName returns a human-readable name for verbosity level
func LevelName(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "User"
	case VerbosityInfo:
		return "Info (-v)"
	case VerbosityDebug:
		return "Debug (-vv)"
	case VerbosityTrace:
		return "Trace (-vvv)"
	default:
		if verbosity > VerbosityTrace {
			return "Trace (-vvv+)"
		}
		return "Unknown"
	}
}
