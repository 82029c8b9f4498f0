package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/hoadonkit/hoadonkit/internal/batch"
	"github.com/hoadonkit/hoadonkit/internal/config"
	"github.com/hoadonkit/hoadonkit/internal/extract"
	"github.com/hoadonkit/hoadonkit/internal/mcp"
	"github.com/hoadonkit/hoadonkit/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		// In batch mode, use normal stdout logging with more detail
		log.SetFlags(log.LstdFlags)
	}
}

// loadEngineConfig builds the extraction keyword tables, applying the
// optional JSON rules override.
func loadEngineConfig(cfg *config.Config) (*extract.Config, error) {
	if cfg.RulesFile == "" {
		return extract.DefaultConfig(), nil
	}
	engineCfg, err := extract.LoadConfigFile(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules file: %w", err)
	}
	return engineCfg, nil
}

// runBatchMode extracts the invoice directory into the summary workbook,
// honoring SIGINT/SIGTERM for early cancellation.
func runBatchMode(ctx context.Context, cfg *config.Config, documents *pdf.Service, extractor *extract.Extractor) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	runner := batch.NewRunner(documents, extractor, cfg.Workers, log.Default())
	summary, err := runner.Run(ctx, cfg.OutputFile)
	if err != nil {
		log.Fatalf("Batch run failed: %v", err)
	}

	fmt.Printf("Done: %d invoices written to %s (%d unrecognized)\n",
		summary.Total, summary.OutputFile, summary.Degraded)
}

// runStdioMode serves the extraction tools over MCP stdio
func runStdioMode(ctx context.Context, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsBatchMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	engineCfg, err := loadEngineConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load extraction rules: %v", err)
	}
	extractor, err := extract.NewExtractor(engineCfg)
	if err != nil {
		log.Fatalf("Failed to create extractor: %v", err)
	}

	documents, err := pdf.NewService(cfg.MaxFileSize, cfg.InvoiceDirectory)
	if err != nil {
		log.Fatalf("Failed to create document service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsBatchMode() {
		runBatchMode(ctx, cfg, documents, extractor)
		return
	}

	server, err := mcp.NewServer(cfg, documents, extractor)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}
	runStdioMode(ctx, server)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("hoadonkit - Vietnamese e-invoice extraction toolkit\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
