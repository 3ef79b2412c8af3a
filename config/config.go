package config

// Config represents the launcher configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Python PythonConfig `mapstructure:"python"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures which server entry point the launcher starts
type ServerConfig struct {
	Root          string `mapstructure:"root"`           // Explicit server root, overrides discovery (empty = discover)
	EntryModule   string `mapstructure:"entry_module"`   // Dotted module that holds the start callable
	EntryCallable string `mapstructure:"entry_callable"` // Callable invoked inside the entry module
}

// PythonConfig configures the interpreter used to run the server
type PythonConfig struct {
	Interpreter string `mapstructure:"interpreter"` // Explicit interpreter path (empty = discover)
	Args        string `mapstructure:"args"`        // Extra interpreter arguments, shell-quoted
}

// SearchConfig configures module and executable discovery
type SearchConfig struct {
	ExtraModuleDirs []string `mapstructure:"extra_module_dirs"` // Registered after the built-in candidates
	DisableDev      bool     `mapstructure:"disable_dev"`       // Skip the development tree candidates
}

// LogConfig configures launcher logging
type LogConfig struct {
	Verbosity int  `mapstructure:"verbosity"` // Same scale as stacked -v flags
	JSON      bool `mapstructure:"json"`      // Structured JSON output instead of console format
}

// Entry point defaults
const (
	DefaultEntryModule   = "pywire_language_server.server"
	DefaultEntryCallable = "start"
)
