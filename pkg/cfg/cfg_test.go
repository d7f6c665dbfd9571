package cfg

import (
	"errors"
	"testing"
)

func TestAddBlock(t *testing.T) {
	f := New("example")

	b, err := f.AddBlock("entry", []string{"br body"})
	if err != nil {
		t.Fatalf("AddBlock() error = %v", err)
	}
	if b.Name != "entry" {
		t.Errorf("Name = %q, want %q", b.Name, "entry")
	}

	if _, err := f.AddBlock("", nil); !errors.Is(err, ErrInvalidBlockName) {
		t.Errorf("AddBlock(empty) error = %v, want ErrInvalidBlockName", err)
	}
	if _, err := f.AddBlock("entry", nil); !errors.Is(err, ErrDuplicateBlock) {
		t.Errorf("AddBlock(dup) error = %v, want ErrDuplicateBlock", err)
	}
}

func TestAddEdge(t *testing.T) {
	f := New("example")
	f.AddBlock("a", nil)
	f.AddBlock("b", nil)

	if err := f.AddEdge("a", "b"); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := f.AddEdge("missing", "b"); !errors.Is(err, ErrUnknownSourceBlock) {
		t.Errorf("AddEdge(missing src) error = %v, want ErrUnknownSourceBlock", err)
	}
	if err := f.AddEdge("a", "missing"); !errors.Is(err, ErrUnknownTargetBlock) {
		t.Errorf("AddEdge(missing dst) error = %v, want ErrUnknownTargetBlock", err)
	}

	a, _ := f.Block("a")
	b, _ := f.Block("b")
	if succs := f.Succs(a); len(succs) != 1 || succs[0] != b {
		t.Errorf("Succs(a) = %v, want [b]", succs)
	}
	if preds := f.Preds(b); len(preds) != 1 || preds[0] != a {
		t.Errorf("Preds(b) = %v, want [a]", preds)
	}
}

func TestEntryAndOrder(t *testing.T) {
	f := New("example")
	if f.Entry() != nil {
		t.Error("Entry() on empty function should be nil")
	}

	names := []string{"entry", "body", "latch", "exit"}
	for _, n := range names {
		if _, err := f.AddBlock(n, nil); err != nil {
			t.Fatalf("AddBlock(%q) error = %v", n, err)
		}
	}

	if f.Entry() == nil || f.Entry().Name != "entry" {
		t.Errorf("Entry() = %v, want entry", f.Entry())
	}

	// Blocks iterate in declaration order.
	for i, b := range f.Blocks() {
		if b.Name != names[i] {
			t.Errorf("Blocks()[%d] = %q, want %q", i, b.Name, names[i])
		}
	}

	if f.BlockCount() != len(names) {
		t.Errorf("BlockCount() = %d, want %d", f.BlockCount(), len(names))
	}
}

func TestEdgeOrder(t *testing.T) {
	f := New("loop")
	for _, n := range []string{"h", "a", "b"} {
		f.AddBlock(n, nil)
	}
	edges := [][2]string{{"h", "a"}, {"a", "b"}, {"b", "h"}}
	for _, e := range edges {
		if err := f.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v) error = %v", e, err)
		}
	}

	got := f.Edges()
	if len(got) != len(edges) {
		t.Fatalf("EdgeCount() = %d, want %d", len(got), len(edges))
	}
	for i, e := range got {
		if e.From.Name != edges[i][0] || e.To.Name != edges[i][1] {
			t.Errorf("Edges()[%d] = %s->%s, want %s->%s", i, e.From.Name, e.To.Name, edges[i][0], edges[i][1])
		}
	}
}
