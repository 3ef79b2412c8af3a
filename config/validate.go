package config

import "github.com/pywire-lang/pywire-launcher/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Entry module: empty falls back to the default, anything else must be a
	// dotted Python module path
	if c.Server.EntryModule != "" && !isDottedModule(c.Server.EntryModule) {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"server.entry_module %q is not a dotted module path", c.Server.EntryModule)
	}

	// Entry callable: empty falls back to the default
	if c.Server.EntryCallable != "" && !isIdentifier(c.Server.EntryCallable) {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"server.entry_callable %q is not an identifier", c.Server.EntryCallable)
	}

	// Interpreter args must split cleanly before we ever build a command line
	if _, err := c.PythonArgs(); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"python.args %q: %v", c.Python.Args, err)
	}

	// Extra module dirs: blank entries would register an empty search root
	for i, dir := range c.Search.ExtraModuleDirs {
		if dir == "" {
			return errors.Wrapf(errors.ErrInvalidConfig,
				"search.extra_module_dirs[%d] is empty", i)
		}
	}

	// Verbosity: negative counts cannot come from flags, only from bad config
	if c.Log.Verbosity < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}

// isDottedModule reports whether s is a dot-separated chain of identifiers,
// e.g. "pywire_language_server.server"
func isDottedModule(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if !isIdentifier(s[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}

// isIdentifier reports whether s is a valid Python identifier (ASCII form)
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
