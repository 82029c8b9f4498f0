package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetFlags resets pflag and viper state between tests since both keep
// package-level state.
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

func setArgs(args ...string) {
	os.Args = append([]string{"hoadonkit"}, args...)
}

func clearEnvVars() {
	for _, key := range []string{
		"HOADONKIT_MODE",
		"HOADONKIT_DIR",
		"HOADONKIT_OUTPUT",
		"HOADONKIT_RULES",
		"HOADONKIT_WORKERS",
		"HOADONKIT_LOGLEVEL",
		"HOADONKIT_MAXFILESIZE",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadFromFlagsDefaults(t *testing.T) {
	resetFlags()
	clearEnvVars()
	setArgs("--dir=" + t.TempDir())

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error = %v", err)
	}
	if cfg.Mode != ModeBatch {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeBatch)
	}
	if cfg.OutputFile != DefaultOutputFile {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, DefaultOutputFile)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadFromFlagsWithFlags(t *testing.T) {
	resetFlags()
	clearEnvVars()
	dir := t.TempDir()
	setArgs("--mode=stdio", "--dir="+dir, "--workers=8", "--loglevel=debug")

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error = %v", err)
	}
	if cfg.Mode != ModeStdio {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeStdio)
	}
	if cfg.InvoiceDirectory != dir {
		t.Errorf("InvoiceDirectory = %q, want %q", cfg.InvoiceDirectory, dir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if !cfg.IsDebug() {
		t.Error("IsDebug() = false, want true")
	}
}

func TestLoadFromFlagsWithEnvironment(t *testing.T) {
	resetFlags()
	clearEnvVars()
	dir := t.TempDir()
	t.Setenv("HOADONKIT_DIR", dir)
	t.Setenv("HOADONKIT_OUTPUT", "custom.xlsx")
	t.Setenv("HOADONKIT_WORKERS", "2")
	setArgs()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error = %v", err)
	}
	if cfg.InvoiceDirectory != dir {
		t.Errorf("InvoiceDirectory = %q, want %q", cfg.InvoiceDirectory, dir)
	}
	if cfg.OutputFile != "custom.xlsx" {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, "custom.xlsx")
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestLoadFromFlagsFlagOverridesEnvironment(t *testing.T) {
	resetFlags()
	clearEnvVars()
	t.Setenv("HOADONKIT_WORKERS", "2")
	setArgs("--dir="+t.TempDir(), "--workers=4")

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error = %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoadFromFlagsInvalidMode(t *testing.T) {
	resetFlags()
	clearEnvVars()
	setArgs("--mode=http", "--dir="+t.TempDir())

	if _, err := LoadFromFlags(); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestLoadFromFlagsInvalidLogLevel(t *testing.T) {
	resetFlags()
	clearEnvVars()
	setArgs("--dir="+t.TempDir(), "--loglevel=trace")

	if _, err := LoadFromFlags(); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestLoadFromFlagsVersionRequested(t *testing.T) {
	resetFlags()
	clearEnvVars()
	setArgs("--version")

	if _, err := LoadFromFlags(); err == nil {
		t.Error("expected version sentinel error")
	}
}
