// processor.go - Import, rendering and output of movetext files
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/config"
	"github.com/lgbarn/movetree-go/internal/drill"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/notation"
	"github.com/lgbarn/movetree-go/internal/rules"
	"github.com/lgbarn/movetree-go/internal/worker"
)

// ProcessingContext holds what every worker needs.
type ProcessingContext struct {
	cfg    *config.Config
	oracle rules.Oracle
	filter *drill.Filter
	opts   []notation.Option

	// drillSide is nil unless a drill listing was requested
	drillSide *chess.Colour
}

// newProcessingContext builds the oracle for the configured start position.
func newProcessingContext(cfg *config.Config, side *chess.Colour) (*ProcessingContext, error) {
	var oracle rules.Oracle = rules.NewStandard()
	if cfg.Import.StartFEN != "" {
		std, err := rules.NewStandardFromFEN(cfg.Import.StartFEN)
		if err != nil {
			return nil, err
		}
		oracle = std
	}
	return &ProcessingContext{
		cfg:       cfg,
		oracle:    oracle,
		filter:    drill.New(oracle),
		opts:      notationOptions(cfg),
		drillSide: side,
	}, nil
}

// readInputs loads every named file, or stdin when there are none.
// Unreadable files are logged and skipped.
func readInputs(args []string, stdin io.Reader, log *zap.SugaredLogger) []worker.WorkItem {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			log.Errorw("reading stdin", "error", err)
			return nil
		}
		return []worker.WorkItem{{Source: "stdin", Text: string(data)}}
	}

	items := make([]worker.WorkItem, 0, len(args))
	for _, filename := range args {
		data, err := os.ReadFile(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			log.Errorw("opening file", "file", filename, "error", err)
			continue
		}
		items = append(items, worker.WorkItem{Source: filename, Text: string(data), Index: len(items)})
	}
	return items
}

// numWorkers resolves the configured worker count.
func numWorkers(cfg *config.Config, items int) int {
	n := cfg.Import.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	return max(min(n, items), 1)
}

// processItem imports and renders one input in a worker goroutine.
func processItem(item worker.WorkItem, ctx *ProcessingContext) worker.ProcessResult {
	result := worker.ProcessResult{Source: item.Source, Index: item.Index}

	result.Trees, result.Error = notation.ImportAll(ctx.oracle, strings.NewReader(item.Text), ctx.opts...)
	if ctx.cfg.Output.JSONFormat {
		return result
	}

	texts := make([]string, 0, len(result.Trees))
	for _, tree := range result.Trees {
		if ctx.drillSide == nil {
			texts = append(texts, notation.Linearize(tree, ctx.opts...))
			continue
		}
		listing, err := drillListing(ctx.filter, tree, *ctx.drillSide)
		if err != nil && result.Error == nil {
			result.Error = err
		}
		texts = append(texts, listing)
	}
	result.Output = strings.Join(texts, "\n\n")
	return result
}

// linePaths lists the path of every line in tree, main line first and each
// variation before its own sub-variations.
func linePaths(tree *movetree.Tree) []movetree.Path {
	var paths []movetree.Path
	stack := []movetree.Path{movetree.Root()}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		paths = append(paths, path)

		line, err := tree.Resolve(path)
		if err != nil {
			continue
		}
		var children []movetree.Path
		for ply := 0; ply < line.Len(); ply++ {
			for v := 1; v <= line.At(ply).VariationCount(); v++ {
				children = append(children, path.Child(ply, v))
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return paths
}

// drillListing writes one row per line: its path, then the moves side
// has to find in it.
func drillListing(filter *drill.Filter, tree *movetree.Tree, side chess.Colour) (string, error) {
	if tree.IsEmpty() {
		return "", nil
	}
	var sb strings.Builder
	for i, path := range linePaths(tree) {
		start, line, err := filter.ForPath(tree, path)
		if err != nil {
			return sb.String(), err
		}
		moves, err := filter.SideMoves(start, line, side)
		if err != nil {
			return sb.String(), err
		}

		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(path.String())
		sb.WriteByte(':')
		if len(moves) == 0 {
			sb.WriteString(" -")
		}
		for _, m := range moves {
			sb.WriteByte(' ')
			sb.WriteString(numbered(m.Move))
		}
	}
	return sb.String(), nil
}

func numbered(rec *movetree.MoveRecord) string {
	if rec.Side == chess.White {
		return fmt.Sprintf("%d. %s", rec.MoveNumber, rec.Notation)
	}
	return fmt.Sprintf("%d... %s", rec.MoveNumber, rec.Notation)
}

// jsonFile is one input in JSON output.
type jsonFile struct {
	Source string               `json:"source"`
	Trees  []*notation.JSONTree `json:"trees"`
	Error  string               `json:"error,omitempty"`
}

// writeResults writes results in input order and returns how many inputs
// failed. Failures are logged; whatever was imported before is still
// written.
func writeResults(w io.Writer, results []worker.ProcessResult, ctx *ProcessingContext, log *zap.SugaredLogger) (int, error) {
	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			log.Errorw("import failed", "file", res.Source, "error", res.Error)
		}
	}

	if ctx.cfg.Output.JSONFormat {
		files := make([]jsonFile, 0, len(results))
		for _, res := range results {
			f := jsonFile{Source: res.Source, Trees: make([]*notation.JSONTree, 0, len(res.Trees))}
			for _, tree := range res.Trees {
				f.Trees = append(f.Trees, notation.TreeToJSON(tree, ctx.opts...))
			}
			if res.Error != nil {
				f.Error = res.Error.Error()
			}
			files = append(files, f)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return failed, enc.Encode(files)
	}

	for i, res := range results {
		if res.Output == "" {
			continue
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return failed, err
			}
		}
		if _, err := fmt.Fprintln(w, res.Output); err != nil {
			return failed, err
		}
	}
	return failed, nil
}
