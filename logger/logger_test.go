package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		verbosity  int
		jsonOutput bool
		wantErr    bool
	}{
		{
			name:       "JSON output mode",
			verbosity:  VerbosityInfo,
			jsonOutput: true,
			wantErr:    false,
		},
		{
			name:       "Console output mode",
			verbosity:  VerbosityInfo,
			jsonOutput: false,
			wantErr:    false,
		},
		{
			name:       "Quiet console mode",
			verbosity:  VerbosityUser,
			jsonOutput: false,
			wantErr:    false,
		},
		{
			name:       "Trace console mode",
			verbosity:  VerbosityTrace,
			jsonOutput: false,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global logger
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.verbosity, tt.jsonOutput)
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if Logger == nil {
					t.Error("Initialize() did not set global Logger")
				}
				if JSONOutput != tt.jsonOutput {
					t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
				}
				if CurrentVerbosity != tt.verbosity {
					t.Errorf("Initialize() CurrentVerbosity = %d, want %d", CurrentVerbosity, tt.verbosity)
				}
			}

			// Cleanup
			if Logger != nil {
				Logger.Sync()
				Logger = nil
			}
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zapcore.Level
	}{
		{"default is warnings only", VerbosityUser, zapcore.WarnLevel},
		{"-v enables info", VerbosityInfo, zapcore.InfoLevel},
		{"-vv enables debug", VerbosityDebug, zapcore.DebugLevel},
		{"-vvv stays at debug", VerbosityTrace, zapcore.DebugLevel},
		{"beyond trace stays at debug", 7, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerbosityToLevel(tt.verbosity); got != tt.want {
				t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
			}
		})
	}
}

func TestShouldLogTrace(t *testing.T) {
	if ShouldLogTrace(VerbosityDebug) {
		t.Error("ShouldLogTrace(VerbosityDebug) = true, want false")
	}
	if !ShouldLogTrace(VerbosityTrace) {
		t.Error("ShouldLogTrace(VerbosityTrace) = false, want true")
	}
	if !ShouldLogTrace(VerbosityTrace + 1) {
		t.Error("ShouldLogTrace above trace = false, want true")
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		verbosity int
		want      string
	}{
		{VerbosityUser, "User"},
		{VerbosityInfo, "Info (-v)"},
		{VerbosityDebug, "Debug (-vv)"},
		{VerbosityTrace, "Trace (-vvv)"},
		{9, "Trace (-vvv+)"},
		{-1, "Unknown"},
	}

	for _, tt := range tests {
		if got := LevelName(tt.verbosity); got != tt.want {
			t.Errorf("LevelName(%d) = %q, want %q", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{"failure report always shown", VerbosityUser, OutputFailure, true},
		{"errors always shown", VerbosityUser, OutputErrors, true},
		{"chosen paths hidden by default", VerbosityUser, OutputChosenPaths, false},
		{"chosen paths shown at -v", VerbosityInfo, OutputChosenPaths, true},
		{"search details hidden at -v", VerbosityInfo, OutputSearchDetails, false},
		{"search details shown at -vv", VerbosityDebug, OutputSearchDetails, true},
		{"environ hidden at -vv", VerbosityDebug, OutputEnviron, false},
		{"environ shown at -vvv", VerbosityTrace, OutputEnviron, true},
		{"unknown category needs max verbosity", VerbosityDebug, OutputCategory(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldOutput(tt.verbosity, tt.category); got != tt.want {
				t.Errorf("ShouldOutput(%d, %s) = %v, want %v",
					tt.verbosity, CategoryName(tt.category), got, tt.want)
			}
		})
	}
}

func TestEnabledCategories(t *testing.T) {
	userCats := EnabledCategories(VerbosityUser)
	traceCats := EnabledCategories(VerbosityTrace)

	if len(userCats) >= len(traceCats) {
		t.Errorf("EnabledCategories(VerbosityUser) = %d categories, expected fewer than trace's %d",
			len(userCats), len(traceCats))
	}

	if len(traceCats) != len(categoryLevels) {
		t.Errorf("EnabledCategories(VerbosityTrace) = %d categories, want all %d",
			len(traceCats), len(categoryLevels))
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name        string
		setupLogger bool
	}{
		{
			name:        "Cleanup with initialized logger",
			setupLogger: true,
		},
		{
			name:        "Cleanup with nil logger (should not panic)",
			setupLogger: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupLogger {
				Logger = newTestLogger(t)
			} else {
				Logger = nil
			}

			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Cleanup() panicked unexpectedly: %v", r)
				}
			}()

			Cleanup()

			if tt.setupLogger && Logger == nil {
				t.Error("Cleanup() should not nil out the logger")
			}

			Logger = nil
		})
	}
}

// newTestLogger creates a logger for testing without modifying global state
func newTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return zapLogger.Sugar()
}

// TestLoggingFunctions tests the package-level logging functions
func TestLoggingFunctions(t *testing.T) {
	Logger = newTestLogger(t)
	defer func() {
		if Logger != nil {
			Logger.Sync()
			Logger = nil
		}
	}()

	// All logging functions should be callable without panicking
	t.Run("Info functions", func(t *testing.T) {
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
	})

	t.Run("Error functions", func(t *testing.T) {
		Error("test")
		Errorf("test %s", "format")
		Errorw("test", "key", "value")
	})

	t.Run("Warn functions", func(t *testing.T) {
		Warn("test")
		Warnf("test %s", "format")
		Warnw("test", "key", "value")
	})

	t.Run("Debug functions", func(t *testing.T) {
		Debug("test")
		Debugf("test %s", "format")
		Debugw("test", "key", "value")
	})

	t.Run("With nil logger (should not panic)", func(t *testing.T) {
		Logger = nil

		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Error("test")
		Errorf("test %s", "format")
		Errorw("test", "key", "value")
		Warn("test")
		Warnf("test %s", "format")
		Warnw("test", "key", "value")
		Debug("test")
		Debugf("test %s", "format")
		Debugw("test", "key", "value")
	})
}

func TestComponentLogger(t *testing.T) {
	Logger = newTestLogger(t)
	defer func() {
		Logger.Sync()
		Logger = nil
	}()

	component := ComponentLogger("entry.resolver")
	if component == nil {
		t.Fatal("ComponentLogger() returned nil")
	}
	component.Info("component message")

	child := ChildLogger(component, FieldRoot, "/opt/bundled/libs")
	if child == nil {
		t.Fatal("ChildLogger() returned nil")
	}
	child.Info("child message")
}
