// Package launch assembles the search state the PyWire language server is
// resolved and started with: ordered module roots rendered into PYTHONPATH
// and ordered executable directories rendered into PATH.
package launch

import (
	"os"
	"runtime"
	"strings"
)

// Environment variables rendered for the server process
const (
	ModulePathVar     = "PYTHONPATH"
	ExecutablePathVar = "PATH"
)

// SearchState is the explicit, explicitly-ordered search configuration for
// one launch. Index 0 is the highest precedence in both lists. Entries are
// prepended, never appended, so each newly discovered location outranks the
// previously known ones.
//
// The state is assembled once per process and handed to the entry resolver;
// nothing mutates ambient process globals along the way.
type SearchState struct {
	Modules     []string // ordered module roots, highest precedence first
	Executables []string // ordered executable dirs, highest precedence first
}

// NewSearchState returns an empty search state.
func NewSearchState() *SearchState {
	return &SearchState{}
}

// PrependModule registers a module root with the highest precedence so far.
func (s *SearchState) PrependModule(dir string) {
	s.Modules = append([]string{dir}, s.Modules...)
}

// PrependModules registers a block of module roots ahead of everything
// registered so far, preserving the block's own order.
func (s *SearchState) PrependModules(dirs []string) {
	if len(dirs) == 0 {
		return
	}
	s.Modules = append(append([]string{}, dirs...), s.Modules...)
}

// PrependExecutable registers an executable directory with the highest
// precedence so far.
func (s *SearchState) PrependExecutable(dir string) {
	s.Executables = append([]string{dir}, s.Executables...)
}

// Environ renders the search state onto a base environment (usually
// os.Environ()) and returns the result. Module roots are joined into
// PYTHONPATH and executable dirs into PATH, in both cases prepended with any
// pre-existing value preserved as a suffix. Empty lists leave the
// corresponding variable untouched.
func (s *SearchState) Environ(base []string) []string {
	env := make([]string, len(base))
	copy(env, base)
	env = setPrepended(env, ModulePathVar, s.Modules)
	env = setPrepended(env, ExecutablePathVar, s.Executables)
	return env
}

// ExecutablePath returns the PATH value Environ would render, for callers
// that need to resolve helper executables before the server starts.
func (s *SearchState) ExecutablePath(base string) string {
	return prependedValue(base, s.Executables)
}

// setPrepended rewrites the first occurrence of key in env with entries
// prepended to its prior value, or appends the variable when absent.
func setPrepended(env []string, key string, entries []string) []string {
	if len(entries) == 0 {
		return env
	}
	for i, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !envKeyEqual(k, key) {
			continue
		}
		env[i] = key + "=" + prependedValue(v, entries)
		return env
	}
	return append(env, key+"="+prependedValue("", entries))
}

func prependedValue(prior string, entries []string) string {
	joined := strings.Join(entries, string(os.PathListSeparator))
	if prior == "" {
		return joined
	}
	if joined == "" {
		return prior
	}
	return joined + string(os.PathListSeparator) + prior
}

// envKeyEqual compares environment variable names. Windows treats them as
// case-insensitive.
func envKeyEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
