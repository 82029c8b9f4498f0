package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeBatch = "batch"
	ModeStdio = "stdio"

	// Default values
	DefaultOutputFile  = "hoadon_tonghop.xlsx"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the hoadonkit binary.
type Config struct {
	// Run mode: "batch" extracts a directory and writes a spreadsheet,
	// "stdio" serves the extraction tools over MCP.
	Mode string

	// Invoice input/output
	InvoiceDirectory string
	OutputFile       string
	RulesFile        string // optional JSON keyword-table overrides

	// Batch configuration
	Workers int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:             ModeBatch,
		InvoiceDirectory: currentDir,
		OutputFile:       DefaultOutputFile,
		Workers:          runtime.NumCPU(),
		Version:          "1.0.0",
		ServerName:       "hoadonkit",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InvoiceDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InvoiceDirectory); err == nil {
			cfg.InvoiceDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("HOADONKIT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.InvoiceDirectory)
	viper.SetDefault("output", cfg.OutputFile)
	viper.SetDefault("rules", cfg.RulesFile)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' to extract a directory, 'stdio' for the MCP server")
	pflag.String("dir", cfg.InvoiceDirectory, "Directory containing invoice PDF files")
	pflag.String("output", cfg.OutputFile, "Output spreadsheet path (batch mode)")
	pflag.String("rules", cfg.RulesFile, "Optional JSON file overriding the keyword tables")
	pflag.Int("workers", cfg.Workers, "Number of concurrent extraction workers (batch mode)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("rules", pflag.Lookup("rules"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nhoadonkit - Vietnamese e-invoice PDF extraction toolkit\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/invoices                  "+
			"# extract a directory to %s\n", os.Args[0], DefaultOutputFile)
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/invoices --output=out.xlsx --workers=8\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --dir=/path/to/invoices     # MCP server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_DIR         Invoice directory\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_OUTPUT      Output spreadsheet path\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_RULES       Keyword-table override file\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_WORKERS     Worker count\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  HOADONKIT_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InvoiceDirectory = viper.GetString("dir")
	cfg.OutputFile = viper.GetString("output")
	cfg.RulesFile = viper.GetString("rules")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeStdio {
		return errors.New("mode must be either 'batch' or 'stdio'")
	}

	if c.InvoiceDirectory == "" {
		return errors.New("invoice directory cannot be empty")
	}

	// Create the invoice directory if it doesn't exist yet
	if _, err := os.Stat(c.InvoiceDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.InvoiceDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create invoice directory %s: %w", c.InvoiceDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access invoice directory %s: %w", c.InvoiceDirectory, err)
	}

	if c.Mode == ModeBatch && c.OutputFile == "" {
		return errors.New("output file cannot be empty in batch mode")
	}

	if c.Workers < 1 {
		return errors.New("worker count must be positive")
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("cannot access rules file %s: %w", c.RulesFile, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InvoiceDirectory: %s, OutputFile: %s, Workers: %d, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.InvoiceDirectory, c.OutputFile, c.Workers, c.LogLevel, c.MaxFileSize)
}

// IsBatchMode returns true when running a one-shot directory extraction.
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsStdioMode returns true when serving MCP over standard I/O.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
