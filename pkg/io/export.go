package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/region"
)

// WriteJSON encodes a function and its region tree as a region analysis
// document and writes it to w. The output can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(fn *cfg.Function, info *region.Info, w io.Writer) error {
	doc := document{
		Function: function{
			Name:   fn.Name(),
			Blocks: make([]block, 0, fn.BlockCount()),
			Edges:  make([]edge, 0, fn.EdgeCount()),
		},
		Regions: descFor(info.Top()),
	}

	for _, b := range fn.Blocks() {
		doc.Function.Blocks = append(doc.Function.Blocks, block{Name: b.Name, Instrs: b.Instrs})
	}
	for _, e := range fn.Edges() {
		doc.Function.Edges = append(doc.Function.Edges, edge{From: e.From.Name, To: e.To.Name})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the document for fn and info to a file at path.
func ExportJSON(fn *cfg.Function, info *region.Info, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(fn, info, f)
}

// descFor rebuilds the declarative description of a region subtree.
func descFor(r *region.Region) *region.Desc {
	d := &region.Desc{
		Entry:  r.Entry().Name,
		Simple: r.IsSimple(),
	}
	if r.Exit() != nil {
		d.Exit = r.Exit().Name
	}
	for _, b := range r.Blocks() {
		d.Blocks = append(d.Blocks, b.Name)
	}
	for _, c := range r.Children() {
		d.Children = append(d.Children, descFor(c))
	}
	return d
}
