package region

import (
	"fmt"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/errors"
)

// Desc is the declarative description of one region as it appears in the
// analysis interchange document. Blocks lists the block names owned
// directly by the region; Children nest to form the tree.
type Desc struct {
	Entry    string   `json:"entry"`
	Exit     string   `json:"exit,omitempty"`
	Simple   bool     `json:"simple"`
	Blocks   []string `json:"blocks"`
	Children []*Desc  `json:"children,omitempty"`
}

// Build assembles and validates the region tree described by root against
// fn. It enforces the document invariants:
//
//   - every named block (entry, exit, owned) is declared in fn
//   - every block of fn is owned by exactly one region
//
// Violations return an error with code INVALID_DOCUMENT. The returned Info
// is a read-only view; Build never mutates fn.
func Build(fn *cfg.Function, root *Desc) (*Info, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no top-level region")
	}

	info := &Info{owner: make(map[*cfg.Block]*Region)}
	next := 0

	var build func(d *Desc, parent *Region, depth int) (*Region, error)
	build = func(d *Desc, parent *Region, depth int) (*Region, error) {
		entry, ok := fn.Block(d.Entry)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "region entry %q is not a declared block", d.Entry)
		}

		r := &Region{
			id:     fmt.Sprintf("r%d", next),
			entry:  entry,
			parent: parent,
			depth:  depth,
			simple: d.Simple,
			info:   info,
		}
		next++

		if d.Exit != "" {
			exit, ok := fn.Block(d.Exit)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "region exit %q is not a declared block", d.Exit)
			}
			r.exit = exit
		}

		for _, name := range d.Blocks {
			b, ok := fn.Block(name)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "region %s owns undeclared block %q", r.id, name)
			}
			if prev, taken := info.owner[b]; taken {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "block %q owned by both %s and %s", name, prev.id, r.id)
			}
			info.owner[b] = r
			r.blocks = append(r.blocks, b)
		}

		for _, cd := range d.Children {
			child, err := build(cd, r, depth+1)
			if err != nil {
				return nil, err
			}
			r.children = append(r.children, child)
		}
		return r, nil
	}

	top, err := build(root, nil, 0)
	if err != nil {
		return nil, err
	}
	info.top = top

	for _, b := range fn.Blocks() {
		if _, ok := info.owner[b]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "block %q is not owned by any region", b.Name)
		}
	}
	return info, nil
}
