// movetext reads annotated chess movetext, checks every move, and writes the
// trees back in canonical form, as JSON, or as drill listings.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/config"
	"github.com/lgbarn/movetree-go/internal/study"
	"github.com/lgbarn/movetree-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("movetext version %s\n", programVersion)
		os.Exit(0)
	}

	os.Exit(run(flag.CommandLine, os.Stdin))
}

// run does the work of main and returns the exit code.
func run(fs *flag.FlagSet, stdin io.Reader) int {
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 2
	}
	applyFlags(cfg, explicitFlags(fs))
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in options: %v\n", err)
		return 2
	}

	log, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return 2
	}
	defer log.Sync() //nolint:errcheck // stderr sync fails on some platforms

	var side *chess.Colour
	if *drillSide != "" {
		c, ok := study.ParseSide(*drillSide)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: -drill must be white or black, not %q\n", *drillSide)
			return 2
		}
		side = &c
	}

	closeOutput, err := setupOutputFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		return 2
	}
	defer closeOutput()

	ctx, err := newProcessingContext(cfg, side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in start position: %v\n", err)
		return 2
	}

	items := readInputs(fs.Args(), stdin, log)
	results := worker.Run(items, func(item worker.WorkItem) worker.ProcessResult {
		return processItem(item, ctx)
	},
		worker.WithWorkers(numWorkers(cfg, len(items))),
		worker.WithBufferSize(min(max(len(items), 1), 100)),
		worker.WithFailFast(cfg.Import.FailFast),
	)
	if skipped := len(items) - len(results); skipped > 0 {
		log.Warnw("stopped after first failure", "skipped", skipped)
	}

	failed, err := writeResults(cfg.OutputFile, results, ctx, log)
	if err != nil {
		log.Errorw("writing output", "error", err)
		return 1
	}

	if cfg.Verbosity > 0 {
		log.Infow("finished", "files", len(results), "failed", failed)
	}
	if failed > 0 || len(items) < max(len(fs.Args()), 1) {
		return 1
	}
	return 0
}

// setupOutputFile points cfg.OutputFile at the -o file when given and
// returns a function closing it.
func setupOutputFile(cfg *config.Config) (func(), error) {
	if *outputFile == "" {
		return func() {}, nil
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}
	if err != nil {
		return nil, err
	}
	cfg.SetOutput(file)
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: movetext [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Checks annotated chess movetext and rewrites it in canonical form.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed %s_ override the configuration file,\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "for example %s_OUTPUT_MAX_LINE_LENGTH=60.\n", config.EnvPrefix)
}
