package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Failure report and errors only, then silence before handoff
//	1 (-v)      - + Chosen roots, interpreter path, server start line
//	2 (-vv)     - + Every candidate probed, config values, timing
//	3 (-vvv)    - + Rendered child environment, interpreter probe output

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputErrors     OutputCategory = iota // Errors with hints and resolution steps
	OutputFailure                          // The resolution failure report
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputStartup     // Startup summary, config file used
	OutputChosenPaths // Winning module root, executable dirs, interpreter
	OutputServerStart // Entry point and handoff announcement

	// Level 2 (-vv) - Detailed
	OutputSearchDetails // Each candidate root probed and its verdict
	OutputConfig        // Config values loaded/applied
	OutputTiming        // Operation timing

	// Level 3 (-vvv) - Debug
	OutputEnviron    // Full rendered PYTHONPATH/PATH for the child
	OutputProbe      // Interpreter probe command and raw output
	OutputInternalOp // Internal operation flow
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	// Level 0 - Always shown
	OutputErrors:     VerbosityUser,
	OutputFailure:    VerbosityUser,
	OutputUserStatus: VerbosityUser,

	// Level 1 - Informational
	OutputStartup:     VerbosityInfo,
	OutputChosenPaths: VerbosityInfo,
	OutputServerStart: VerbosityInfo,

	// Level 2 - Detailed
	OutputSearchDetails: VerbosityDebug,
	OutputConfig:        VerbosityDebug,
	OutputTiming:        VerbosityDebug,

	// Level 3 - Debug
	OutputEnviron:    VerbosityTrace,
	OutputProbe:      VerbosityTrace,
	OutputInternalOp: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputErrors:        "errors",
	OutputFailure:       "failure-report",
	OutputUserStatus:    "status",
	OutputStartup:       "startup",
	OutputChosenPaths:   "chosen-paths",
	OutputServerStart:   "server-start",
	OutputSearchDetails: "search-details",
	OutputConfig:        "config",
	OutputTiming:        "timing",
	OutputEnviron:       "environ",
	OutputProbe:         "probe",
	OutputInternalOp:    "internal",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "errors and the failure report only"
	case VerbosityInfo:
		return "above + chosen paths, interpreter, server start"
	case VerbosityDebug:
		return "above + search candidates, config, timing"
	case VerbosityTrace:
		return "above + child environment and probe output"
	default:
		if verbosity > VerbosityTrace {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
