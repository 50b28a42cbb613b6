package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every run-time-tunable knob of the macro processor.
type Config struct {
	// Syntax carries the startup values for the reconfigurable lexer
	// (package lex); changequote/changecom/changeword override these
	// at run time without touching the file.
	Syntax struct {
		LeftQuote    string `toml:"left_quote"`
		RightQuote   string `toml:"right_quote"`
		BeginComment string `toml:"begin_comment"`
		EndComment   string `toml:"end_comment"`
		WordRegexp   string `toml:"word_regexp"`
	} `toml:"syntax"`

	// Eval selects the expression evaluator's number backend.
	// DefaultRadix and DefaultWidth are loaded and saved but not read
	// by the eval builtin, which defaults to radix 10 and width 1.
	Eval struct {
		Backend      string `toml:"backend"` // "fixed64" or "rational"
		DefaultRadix int    `toml:"default_radix"`
		DefaultWidth int    `toml:"default_width"`
	} `toml:"eval"`

	// Include lists directories searched, in order, for include()
	// and sinclude() targets not found under the name as given
	// (relative to the working directory).
	Include struct {
		Dirs []string `toml:"dirs"`
	} `toml:"include"`

	// Trace controls the run's diagnostic trace log. Only Enabled is
	// read by the driver; OutputFile and Format are loaded and saved
	// but not read by any other package.
	Trace struct {
		Enabled    bool   `toml:"enabled"`
		OutputFile string `toml:"output_file"`
		Format     string `toml:"format"` // "text" or "json"
	} `toml:"trace"`

	// Debug holds a debug level for the interactive session; it is
	// loaded and saved but not read by any other package.
	Debug struct {
		Level int `toml:"level"`
	} `toml:"debug"`
}

// DefaultConfig returns a configuration with default values: classic
// delimiters, a fixed-width integer evaluator backend, tracing off.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Syntax.LeftQuote = "`"
	cfg.Syntax.RightQuote = "'"
	cfg.Syntax.BeginComment = "#"
	cfg.Syntax.EndComment = "\n"
	cfg.Syntax.WordRegexp = ""

	cfg.Eval.Backend = "fixed64"
	cfg.Eval.DefaultRadix = 10
	cfg.Eval.DefaultWidth = 1

	cfg.Trace.Enabled = false
	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.Format = "text"

	cfg.Debug.Level = 0

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\m4go\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "m4go")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/m4go/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "m4go")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
