// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/movetree-go/internal/config"
	"github.com/lgbarn/movetree-go/internal/notation"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length (0 = no wrapping)")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")

	// Content options
	noComments   = flag.Bool("C", false, "Don't output comments")
	noGlyphs     = flag.Bool("N", false, "Don't output move glyphs")
	noVariations = flag.Bool("V", false, "Don't output variations")

	// Import options
	startFEN = flag.String("fen", "", "Start every tree from this FEN position")
	maxDepth = flag.Int("depth", 64, "Maximum variation nesting depth (0 = unlimited)")

	// Drill listing
	drillSide = flag.String("drill", "", "List the moves one side must find in every line: white or black")

	// Configuration and logging
	configFile = flag.String("config", "", "Configuration file (yaml, json or toml)")
	logLevel   = flag.String("loglevel", "", "Log level: debug, info, warn, error")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no file count)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers  = flag.Int("workers", 0, "Number of files imported concurrently (0 = auto-detect based on CPU cores)")
	failFast = flag.Bool("failfast", false, "Stop after the first file that fails to import")
)

// explicitFlags returns the names of the flags given on the command line.
// Only these override values from the configuration file.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config, set map[string]bool) {
	applyContentFlags(cfg, set)
	applyImportFlags(cfg, set)

	if set["loglevel"] {
		cfg.Log.Level = *logLevel
	}
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyContentFlags configures content output settings.
func applyContentFlags(cfg *config.Config, set map[string]bool) {
	if set["w"] {
		cfg.Output.MaxLineLength = uint(max(*lineLength, 0))
	}
	if set["C"] {
		cfg.Output.KeepComments = !*noComments
	}
	if set["N"] {
		cfg.Output.KeepGlyphs = !*noGlyphs
	}
	if set["V"] {
		cfg.Output.KeepVariations = !*noVariations
	}
	if set["J"] {
		cfg.Output.JSONFormat = *jsonOutput
	}
}

// applyImportFlags configures how input is read.
func applyImportFlags(cfg *config.Config, set map[string]bool) {
	if set["fen"] {
		cfg.Import.StartFEN = *startFEN
	}
	if set["depth"] {
		cfg.Import.MaxDepth = *maxDepth
	}
	if set["workers"] {
		cfg.Import.Workers = *workers
	}
	if set["failfast"] {
		cfg.Import.FailFast = *failFast
	}
}

// notationOptions translates the output and import sections.
func notationOptions(cfg *config.Config) []notation.Option {
	return []notation.Option{
		notation.WithMaxLineLength(int(cfg.Output.MaxLineLength)),
		notation.WithComments(cfg.Output.KeepComments),
		notation.WithGlyphs(cfg.Output.KeepGlyphs),
		notation.WithVariations(cfg.Output.KeepVariations),
		notation.WithMaxDepth(cfg.Import.MaxDepth),
	}
}
