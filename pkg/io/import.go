package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/errors"
	"github.com/matzehuels/regionviz/pkg/region"
)

type document struct {
	Function function     `json:"function"`
	Regions  *region.Desc `json:"regions"`
}

type function struct {
	Name   string  `json:"name"`
	Blocks []block `json:"blocks"`
	Edges  []edge  `json:"edges"`
}

type block struct {
	Name   string   `json:"name"`
	Instrs []string `json:"instrs,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadJSON decodes a region analysis document from r.
//
// The document must contain a "function" object (blocks and edges) and a
// "regions" object (the top-level region tree); see the package
// documentation for the format. The first block listed is the entry block.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A block has an empty or duplicate name
//   - An edge references an undeclared block
//   - The region tree violates the ownership invariants
//
// Structural violations carry the INVALID_DOCUMENT error code. The returned
// views are independent of r; ReadJSON does not close r.
func ReadJSON(r io.Reader) (*cfg.Function, *region.Info, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	fn := cfg.New(doc.Function.Name)
	for _, b := range doc.Function.Blocks {
		if _, err := fn.AddBlock(b.Name, b.Instrs); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "block %q", b.Name)
		}
	}
	for _, e := range doc.Function.Edges {
		if err := fn.AddEdge(e.From, e.To); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "edge %s->%s", e.From, e.To)
		}
	}

	info, err := region.Build(fn, doc.Regions)
	if err != nil {
		return nil, nil, err
	}
	return fn, info, nil
}

// ImportJSON reads the region analysis document at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. A missing file is reported with the FILE_NOT_FOUND code; decoding
// failures are reported as by [ReadJSON].
func ImportJSON(path string) (*cfg.Function, *region.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
