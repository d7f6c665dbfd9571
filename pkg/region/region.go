// Package region provides a read-only view of a function's SESE region tree.
//
// Regions are single-entry single-exit portions of a control-flow graph,
// arranged in a tree: the top-level region spans the whole function and each
// child is nested inside its parent. regionviz does not perform the region
// analysis; the tree is decoded from the analysis interchange document and
// assembled with [Build].
//
// Every basic block is owned by exactly one region - the innermost region
// containing it. [Info.RegionFor] resolves that owner, and a region
// "contains" a block when the block is owned by the region itself or by one
// of its descendants.
package region

import "github.com/matzehuels/regionviz/pkg/cfg"

// Region is one node of the region tree. Regions are immutable after Build
// and valid only for the function they were built against.
type Region struct {
	id       string
	entry    *cfg.Block
	exit     *cfg.Block // nil for the top-level region
	parent   *Region    // nil for the top-level region
	children []*Region
	blocks   []*cfg.Block // blocks owned directly, document order
	depth    int          // 0 for the top-level region
	simple   bool
	info     *Info
}

// ID returns the region's stable identifier ("r0", "r1", ... in pre-order
// document order). IDs are deterministic for a given document, so emitted
// cluster names are stable across runs.
func (r *Region) ID() string { return r.id }

// Entry returns the region's entry block.
func (r *Region) Entry() *cfg.Block { return r.entry }

// Exit returns the region's exit block, or nil for the top-level region.
func (r *Region) Exit() *cfg.Block { return r.exit }

// Parent returns the enclosing region, or nil for the top-level region.
func (r *Region) Parent() *Region { return r.parent }

// Children returns the immediate sub-regions in document order.
// The returned slice must not be modified.
func (r *Region) Children() []*Region { return r.children }

// Blocks returns the blocks owned directly by this region (not reassigned
// to any descendant), in document order.
func (r *Region) Blocks() []*cfg.Block { return r.blocks }

// Depth returns the region's nesting depth. The top-level region has
// depth 0 and each child is one deeper than its parent.
func (r *Region) Depth() int { return r.depth }

// IsSimple reports the topological classification supplied by the region
// analysis (a simple region has a single entry and a single exit edge).
func (r *Region) IsSimple() bool { return r.simple }

// Contains reports whether b lies inside this region, i.e. whether b is
// owned by the region itself or by one of its descendants.
func (r *Region) Contains(b *cfg.Block) bool {
	for owner := r.info.RegionFor(b); owner != nil; owner = owner.parent {
		if owner == r {
			return true
		}
	}
	return false
}

// Info is the assembled region tree for one function.
type Info struct {
	top   *Region
	owner map[*cfg.Block]*Region
}

// Top returns the top-level region spanning the whole function.
func (i *Info) Top() *Region { return i.top }

// RegionFor returns the innermost region owning b, or nil if b does not
// belong to the function this tree was built for.
func (i *Info) RegionFor(b *cfg.Block) *Region { return i.owner[b] }

// Regions returns every region of the tree in pre-order.
func (i *Info) Regions() []*Region {
	var out []*Region
	var walk func(r *Region)
	walk = func(r *Region) {
		out = append(out, r)
		for _, c := range r.children {
			walk(c)
		}
	}
	walk(i.top)
	return out
}

// NodeKind distinguishes the two variants of a graph node: a plain basic
// block or a collapsed sub-region marker.
type NodeKind int

const (
	// NodeBlock wraps a basic block.
	NodeBlock NodeKind = iota
	// NodeSubregion wraps a collapsed sub-region. Sub-regions are drawn as
	// clusters rather than ordinary nodes, so these never reach the base
	// node set during normal rendering.
	NodeSubregion
)

// Node is a tagged reference used by the rendered graph: exactly one of
// Block or Region is set, according to Kind.
type Node struct {
	Kind   NodeKind
	Block  *cfg.Block // set when Kind == NodeBlock
	Region *Region    // set when Kind == NodeSubregion
}

// BlockNode wraps a basic block as a graph node.
func BlockNode(b *cfg.Block) Node { return Node{Kind: NodeBlock, Block: b} }

// SubregionNode wraps a collapsed sub-region as a graph node.
func SubregionNode(r *Region) Node { return Node{Kind: NodeSubregion, Region: r} }

// IsSubregion reports whether the node is a collapsed sub-region marker.
func (n Node) IsSubregion() bool { return n.Kind == NodeSubregion }
