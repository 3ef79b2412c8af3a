package pyenv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/logger"
)

// ErrNoInterpreter indicates that no Python interpreter could be found in
// the virtual environment, the configuration, or on PATH.
var ErrNoInterpreter = errors.New("no python interpreter found")

// FindInterpreter picks the interpreter the server will run under, in
// precedence order: the virtual environment's own interpreter, the
// configured override, then python3 and python from PATH.
//
// A configured override must resolve; it is not silently skipped, since a
// user who set it wants that interpreter or an error.
func FindInterpreter(venv *Env, override string) (string, error) {
	if venv != nil {
		candidate := filepath.Join(venv.BinDir, "python")
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	if override != "" {
		if isRegularFile(override) {
			return override, nil
		}
		if found, err := exec.LookPath(override); err == nil {
			return found, nil
		}
		return "", errors.Wrapf(ErrNoInterpreter, "configured interpreter %q not found", override)
	}

	for _, name := range []string{"python3", "python"} {
		if found, err := exec.LookPath(name); err == nil {
			return found, nil
		}
	}
	return "", ErrNoInterpreter
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Probe runs the interpreter with --version and reports the version it
// identifies as. Used by manifest version checks and the doctor report.
func Probe(ctx context.Context, interpreter string) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, interpreter, "--version").CombinedOutput()
	if err != nil {
		return nil, errors.Wrapf(err, "probing interpreter %q", interpreter)
	}
	if logger.ShouldOutput(logger.CurrentVerbosity, logger.OutputProbe) {
		logger.Debugw("interpreter probe output",
			logger.FieldInterpreter, interpreter,
			"output", strings.TrimSpace(string(out)),
		)
	}
	version, err := ParseVersionOutput(string(out))
	if err != nil {
		return nil, err
	}
	logger.Debugw("interpreter probed",
		logger.FieldInterpreter, interpreter,
		"version", version.String(),
	)
	return version, nil
}

// ParseVersionOutput extracts the version from interpreter --version output
// such as "Python 3.12.4". Pre-release suffixes like "3.13.0rc1" are
// tolerated by keeping only the numeric prefix.
func ParseVersionOutput(out string) (*semver.Version, error) {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return nil, errors.Newf("unrecognized interpreter version output %q", out)
	}
	raw := fields[len(fields)-1]
	trimmed := numericPrefix(raw)
	if trimmed == "" {
		return nil, errors.Newf("unrecognized interpreter version output %q", out)
	}
	version, err := semver.NewVersion(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing interpreter version %q", raw)
	}
	return version, nil
}

// numericPrefix returns the longest prefix of s consisting of digits and
// dots, without a trailing dot.
func numericPrefix(s string) string {
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	return strings.TrimRight(s[:end], ".")
}
