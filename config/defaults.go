package config

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server entry point defaults
	v.SetDefault("server.root", "")
	v.SetDefault("server.entry_module", DefaultEntryModule)
	v.SetDefault("server.entry_callable", DefaultEntryCallable)

	// Python interpreter defaults
	v.SetDefault("python.interpreter", "")
	v.SetDefault("python.args", "")

	// Search defaults
	v.SetDefault("search.extra_module_dirs", []string{})
	v.SetDefault("search.disable_dev", false)

	// Log defaults
	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.json", false)
}

// BindEnvOverrides explicitly binds the values editors commonly inject
// to short environment variable names
func BindEnvOverrides(v *viper.Viper) {
	v.BindEnv("python.interpreter", "PYWIRE_PYTHON")
	v.BindEnv("server.root", "PYWIRE_SERVER_ROOT")
}

// GetEntryModule returns the entry module (default: pywire_language_server.server)
func (c *Config) GetEntryModule() string {
	if c.Server.EntryModule == "" {
		return DefaultEntryModule
	}
	return c.Server.EntryModule
}

// GetEntryCallable returns the entry callable (default: start)
func (c *Config) GetEntryCallable() string {
	if c.Server.EntryCallable == "" {
		return DefaultEntryCallable
	}
	return c.Server.EntryCallable
}

// PythonArgs splits python.args using shell quoting rules.
// An empty setting yields no arguments.
func (c *Config) PythonArgs() ([]string, error) {
	if c.Python.Args == "" {
		return nil, nil
	}
	return shellquote.Split(c.Python.Args)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: {EntryModule: %s}, Python: {Interpreter: %s}, Log: {Verbosity: %d}}",
		c.GetEntryModule(), c.Python.Interpreter, c.Log.Verbosity)
}
