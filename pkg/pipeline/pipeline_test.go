package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/regionviz/pkg/cache"
	"github.com/matzehuels/regionviz/pkg/errors"
)

const loopDocument = `{
  "function": {
    "name": "loop",
    "blocks": [
      {"name": "entry"},
      {"name": "header", "instrs": ["br body, exit"]},
      {"name": "body", "instrs": ["br header"]},
      {"name": "exit"}
    ],
    "edges": [
      {"from": "entry", "to": "header"},
      {"from": "header", "to": "body"},
      {"from": "body", "to": "header"},
      {"from": "header", "to": "exit"}
    ]
  },
  "regions": {
    "entry": "entry",
    "blocks": ["entry", "exit"],
    "children": [
      {"entry": "header", "exit": "exit", "simple": true, "blocks": ["header", "body"]}
    ]
  }
}`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loop.json")
	if err := os.WriteFile(path, []byte(loopDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOptionsValidate(t *testing.T) {
	opts := Options{Input: "loop.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("default scale = %v, want %v", opts.Scale, DefaultScale)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	noInput := Options{}
	if err := noInput.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing input: code = %v, want INVALID_INPUT", errors.GetCode(err))
	}

	badFormat := Options{Input: "loop.json", Formats: []string{"gif"}}
	if err := badFormat.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestRunnerLoad(t *testing.T) {
	r := NewRunner(nil, nil)
	fn, info, err := r.Load(context.Background(), writeDocument(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fn.Name() != "loop" {
		t.Errorf("function name = %q, want loop", fn.Name())
	}
	if got := len(info.Regions()); got != 2 {
		t.Errorf("region count = %d, want 2", got)
	}
}

func TestRunnerLoadMissing(t *testing.T) {
	r := NewRunner(nil, nil)
	_, _, err := r.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestBuildDOT(t *testing.T) {
	r := NewRunner(nil, nil)
	fn, info, err := r.Load(context.Background(), writeDocument(t))
	if err != nil {
		t.Fatal(err)
	}

	dot := BuildDOT(fn, info, Options{})
	for _, want := range []string{
		`digraph "Region graph for 'loop'"`,
		`subgraph cluster_r1`,
		`"body" -> "header" [constraint=false];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestExecuteSVG(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Input:   writeDocument(t),
		Formats: []string{"svg"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	svg := result.Artifacts["svg"]
	if len(svg) == 0 {
		t.Fatal("no SVG artifact produced")
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("artifact does not look like SVG")
	}
	if result.CacheHits["svg"] {
		t.Error("first render should not be a cache hit")
	}
}

func TestExecuteCacheReplay(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(store, nil)
	defer r.Close()

	opts := Options{Input: writeDocument(t), Formats: []string{"svg"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if first.CacheHits["svg"] {
		t.Error("first render should miss the cache")
	}
	if !second.CacheHits["svg"] {
		t.Error("second render should replay from cache")
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs from rendered artifact")
	}
}
