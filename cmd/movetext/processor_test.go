package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/config"
	"github.com/lgbarn/movetree-go/internal/drill"
	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/rules"
	"github.com/lgbarn/movetree-go/internal/testutil"
	"github.com/lgbarn/movetree-go/internal/worker"
)

const italian = "1. e4 (1... c5 (2. c3 d5) 2. Nf3 d6) e5 2. Nf3 Nc6 3. Bc4"

func testContext(t *testing.T, cfg *config.Config, side *chess.Colour) *ProcessingContext {
	t.Helper()
	ctx, err := newProcessingContext(cfg, side)
	if err != nil {
		t.Fatalf("newProcessingContext: %v", err)
	}
	return ctx
}

func colour(c chess.Colour) *chess.Colour { return &c }

func TestLinePaths(t *testing.T) {
	tree := testutil.MustImport(t, italian)

	var got []string
	for _, p := range linePaths(tree) {
		got = append(got, p.String())
	}
	testutil.AssertEqual(t, got, []string{"0", "0/0:1", "0/0:1/0:1"})
}

func TestDrillListing(t *testing.T) {
	tree := testutil.MustImport(t, italian)
	filter := drill.New(rules.NewStandard())

	tests := []struct {
		side chess.Colour
		want string
	}{
		{chess.White, "0: 1. e4 2. Nf3 3. Bc4\n0/0:1: 2. Nf3\n0/0:1/0:1: 2. c3"},
		{chess.Black, "0: 1... e5 2... Nc6\n0/0:1: 1... c5 2... d6\n0/0:1/0:1: 2... d5"},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			got, err := drillListing(filter, tree, tt.side)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestDrillListingSideWithoutMoves(t *testing.T) {
	tree := testutil.MustImport(t, "1. e4")
	got, err := drillListing(drill.New(rules.NewStandard()), tree, chess.Black)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "0: -")
}

func TestProcessItem(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cfg *config.Config)
		side    *chess.Colour
		text    string
		want    string
		wantErr error
	}{
		{
			name: "canonical form",
			text: "1.e4   e5 2.Nf3!  {develops}\n(2... d6) Nc6",
			want: "1. e4 e5 2. Nf3! {develops} (2... d6) Nc6",
		},
		{
			name:  "drops comments and variations",
			setup: func(cfg *config.Config) { cfg.Output.KeepComments = false; cfg.Output.KeepVariations = false },
			text:  "1. e4 {king pawn} (1... c5) e5",
			want:  "1. e4 e5",
		},
		{
			name: "several documents",
			text: "1. e4 e5 1-0\n\n1. d4 d5 *",
			want: "1. e4 e5\n\n1. d4 d5",
		},
		{
			name: "drill listing",
			side: colour(chess.White),
			text: "1. e4 (1... c5 2. Nf3) e5 2. Nf3",
			want: "0: 1. e4 2. Nf3\n0/0:1: 2. Nf3",
		},
		{
			name:    "start position",
			setup:   func(cfg *config.Config) { cfg.Import.StartFEN = "4k3/8/8/8/8/8/8/4K2R w K - 0 1" },
			text:    "1. O-O Kd7",
			want:    "1. O-O Kd7",
		},
		{
			name:    "illegal move keeps earlier documents",
			text:    "1. e4 *\n1. e5 *",
			want:    "1. e4",
			wantErr: errors.ErrIllegalMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Output.MaxLineLength = 0
			if tt.setup != nil {
				tt.setup(cfg)
			}
			ctx := testContext(t, cfg, tt.side)

			res := processItem(worker.WorkItem{Source: tt.name, Text: tt.text}, ctx)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, res.Error, tt.wantErr)
			} else {
				testutil.AssertNoError(t, res.Error)
			}
			testutil.AssertEqual(t, res.Output, tt.want)
		})
	}
}

func TestWriteResultsText(t *testing.T) {
	cfg := config.NewConfig()
	ctx := testContext(t, cfg, nil)
	log := zaptest.NewLogger(t).Sugar()

	results := []worker.ProcessResult{
		{Source: "a", Index: 0, Output: "1. e4 e5"},
		{Source: "b", Index: 1, Error: errors.ErrIllegalMove},
		{Source: "c", Index: 2, Output: "1. d4"},
	}
	var buf bytes.Buffer
	failed, err := writeResults(&buf, results, ctx, log)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, failed, 1)
	testutil.AssertEqual(t, buf.String(), "1. e4 e5\n\n1. d4\n")
}

func TestWriteResultsJSON(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Output.JSONFormat = true
	ctx := testContext(t, cfg, nil)

	res := processItem(worker.WorkItem{Source: "game.txt", Text: "1. e4 (1... c5) e5"}, ctx)
	testutil.AssertNoError(t, res.Error)
	testutil.AssertEqual(t, res.Output, "")

	var buf bytes.Buffer
	failed, err := writeResults(&buf, []worker.ProcessResult{res}, ctx, zaptest.NewLogger(t).Sugar())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, failed, 0)

	var files []struct {
		Source string `json:"source"`
		Trees  []struct {
			MoveText string `json:"moveText"`
			Count    int    `json:"count"`
		} `json:"trees"`
	}
	if err := json.Unmarshal(buf.Bytes(), &files); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	testutil.AssertEqual(t, len(files), 1)
	testutil.AssertEqual(t, files[0].Source, "game.txt")
	testutil.AssertEqual(t, len(files[0].Trees), 1)
	testutil.AssertEqual(t, files[0].Trees[0].MoveText, "1. e4 (1... c5) e5")
	testutil.AssertEqual(t, files[0].Trees[0].Count, 3)
}

func TestReadInputs(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("1. e4"), 0o644); err != nil {
		t.Fatal(err)
	}

	items := readInputs([]string{good, filepath.Join(dir, "missing.txt"), good}, nil, log)
	testutil.AssertEqual(t, len(items), 2)
	testutil.AssertEqual(t, items[1].Index, 1)
	testutil.AssertEqual(t, items[1].Text, "1. e4")

	items = readInputs(nil, strings.NewReader("1. d4"), log)
	testutil.AssertEqual(t, len(items), 1)
	testutil.AssertEqual(t, items[0].Source, "stdin")
}

func TestNumWorkers(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Import.Workers = 4
	testutil.AssertEqual(t, numWorkers(cfg, 10), 4)
	testutil.AssertEqual(t, numWorkers(cfg, 2), 2)
	testutil.AssertEqual(t, numWorkers(cfg, 0), 1)
}
