package region

import (
	"testing"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/errors"
)

// loopFunc builds the canonical single-natural-loop function:
// entry -> h, h -> a, a -> b, b -> h (back edge), h -> exit.
func loopFunc(t *testing.T) *cfg.Function {
	t.Helper()
	f := cfg.New("loop")
	for _, n := range []string{"entry", "h", "a", "b", "exit"} {
		if _, err := f.AddBlock(n, nil); err != nil {
			t.Fatalf("AddBlock(%q) error = %v", n, err)
		}
	}
	for _, e := range [][2]string{{"entry", "h"}, {"h", "a"}, {"a", "b"}, {"b", "h"}, {"h", "exit"}} {
		if err := f.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v) error = %v", e, err)
		}
	}
	return f
}

// loopDesc describes the matching region tree: the top-level region owns
// entry and exit, a child loop region owns h, a and b.
func loopDesc() *Desc {
	return &Desc{
		Entry:  "entry",
		Blocks: []string{"entry", "exit"},
		Children: []*Desc{
			{Entry: "h", Exit: "exit", Simple: true, Blocks: []string{"h", "a", "b"}},
		},
	}
}

func TestBuild(t *testing.T) {
	f := loopFunc(t)
	info, err := Build(f, loopDesc())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	top := info.Top()
	if top.Depth() != 0 {
		t.Errorf("top Depth() = %d, want 0", top.Depth())
	}
	if top.Parent() != nil {
		t.Error("top Parent() should be nil")
	}
	if len(top.Children()) != 1 {
		t.Fatalf("top Children() = %d, want 1", len(top.Children()))
	}

	loop := top.Children()[0]
	if loop.Depth() != 1 {
		t.Errorf("loop Depth() = %d, want 1", loop.Depth())
	}
	if loop.Entry().Name != "h" {
		t.Errorf("loop Entry() = %q, want h", loop.Entry().Name)
	}
	if loop.Exit() == nil || loop.Exit().Name != "exit" {
		t.Errorf("loop Exit() = %v, want exit", loop.Exit())
	}
	if !loop.IsSimple() {
		t.Error("loop IsSimple() = false, want true")
	}

	// Stable pre-order IDs.
	if top.ID() != "r0" || loop.ID() != "r1" {
		t.Errorf("IDs = %s, %s, want r0, r1", top.ID(), loop.ID())
	}
}

func TestPartitionInvariant(t *testing.T) {
	f := loopFunc(t)
	info, err := Build(f, loopDesc())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Every block is owned by exactly one region and the union of owned
	// blocks equals the function's block set.
	seen := make(map[string]string)
	for _, r := range info.Regions() {
		for _, b := range r.Blocks() {
			if prev, dup := seen[b.Name]; dup {
				t.Errorf("block %q owned by both %s and %s", b.Name, prev, r.ID())
			}
			seen[b.Name] = r.ID()
		}
	}
	for _, b := range f.Blocks() {
		if _, ok := seen[b.Name]; !ok {
			t.Errorf("block %q not owned by any region", b.Name)
		}
		if info.RegionFor(b) == nil {
			t.Errorf("RegionFor(%q) = nil", b.Name)
		}
	}
}

func TestRegionForAndContains(t *testing.T) {
	f := loopFunc(t)
	info, err := Build(f, loopDesc())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	top := info.Top()
	loop := top.Children()[0]

	h, _ := f.Block("h")
	entry, _ := f.Block("entry")

	if got := info.RegionFor(h); got != loop {
		t.Errorf("RegionFor(h) = %v, want loop region", got)
	}
	if got := info.RegionFor(entry); got != top {
		t.Errorf("RegionFor(entry) = %v, want top region", got)
	}

	if !loop.Contains(h) {
		t.Error("loop should contain h")
	}
	if loop.Contains(entry) {
		t.Error("loop should not contain entry")
	}
	if !top.Contains(h) {
		t.Error("top should contain h (owned by descendant)")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		desc *Desc
	}{
		{name: "nil root", desc: nil},
		{name: "unknown entry", desc: &Desc{Entry: "nope", Blocks: []string{"entry", "h", "a", "b", "exit"}}},
		{
			name: "unknown exit",
			desc: &Desc{Entry: "entry", Exit: "nope", Blocks: []string{"entry", "h", "a", "b", "exit"}},
		},
		{
			name: "undeclared owned block",
			desc: &Desc{Entry: "entry", Blocks: []string{"entry", "ghost", "h", "a", "b", "exit"}},
		},
		{
			name: "double ownership",
			desc: &Desc{
				Entry:  "entry",
				Blocks: []string{"entry", "h", "a", "b", "exit"},
				Children: []*Desc{
					{Entry: "h", Blocks: []string{"h"}},
				},
			},
		},
		{
			name: "unowned block",
			desc: &Desc{Entry: "entry", Blocks: []string{"entry", "h", "a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loopFunc(t)
			_, err := Build(f, tt.desc)
			if err == nil {
				t.Fatal("Build() error = nil, want INVALID_DOCUMENT")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Build() error = %v, want code INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestNodeVariants(t *testing.T) {
	f := loopFunc(t)
	info, err := Build(f, loopDesc())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	h, _ := f.Block("h")
	bn := BlockNode(h)
	if bn.Kind != NodeBlock || bn.Block != h || bn.IsSubregion() {
		t.Errorf("BlockNode() = %+v, want block variant", bn)
	}

	rn := SubregionNode(info.Top())
	if rn.Kind != NodeSubregion || rn.Region != info.Top() || !rn.IsSubregion() {
		t.Errorf("SubregionNode() = %+v, want subregion variant", rn)
	}
}
