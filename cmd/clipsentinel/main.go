package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/raaihank/clip-sentinel/internal/config"
	"github.com/raaihank/clip-sentinel/internal/logger"
	"github.com/raaihank/clip-sentinel/internal/rules"
	"github.com/raaihank/clip-sentinel/internal/sanitizer"
	"go.uber.org/zap"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	// Parse command line flags
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		debug       = flag.Bool("debug", false, "Enable debug output")
		showVersion = flag.Bool("version", false, "Show version information")
		resetConfig = flag.Bool("reset-config", false, "Reset configuration to defaults and exit")
	)
	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("Clip-Sentinel %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	// Reset configuration and exit
	if *resetConfig {
		path := *configPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to resolve config path: %v\n", err)
				os.Exit(1)
			}
		}
		if err := config.Reset(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration reset: %s\n", path)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if *debug {
		loggerConfig.Level = "debug"
		loggerConfig.Format = "console"
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		}
	}

	log, err := logger.New(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting Clip-Sentinel",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("build_date", date),
		zap.Int("rules", len(cfg.Rules)),
	)

	// Pipe mode: sanitize stdin to stdout. The GUI shell embeds the
	// monitor loop instead; this binary exercises the same engine on a
	// stream so rules can be tested from the command line.
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal("Failed to read stdin", zap.Error(err))
	}

	engine := sanitizer.New(log.WithComponent("sanitizer"))
	set := rules.NewSet(cfg.Rules)
	if !cfg.Enabled {
		set = rules.NewSet(nil)
		log.Warn("Sanitization disabled in configuration; passing input through")
	}

	result := engine.Sanitize(string(input), set)

	for _, d := range result.Diagnostics {
		log.Warn("Rule skipped", zap.String("rule", d.Rule), zap.Error(d.Err))
	}
	log.Info("Input sanitized",
		zap.Int("total_matches", result.Total()),
		zap.Any("rule_counts", result.Counts),
	)

	if _, err := os.Stdout.WriteString(result.Output); err != nil {
		log.Fatal("Failed to write output", zap.Error(err))
	}
}
