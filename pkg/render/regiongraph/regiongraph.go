// Package regiongraph renders the SESE region decomposition of a function's
// control-flow graph as Graphviz DOT.
//
// The base graph declares one node per basic block and one edge per
// control-flow edge; the region tree is then appended as nested subgraph
// clusters, one per region, colored by nesting depth from the paired12
// palette. Loop back edges are marked constraint=false so they do not
// distort the top-to-bottom layout computed by Graphviz.
//
// The resulting DOT string can be laid out with [render.SVG] or written to
// a .dot file for external tooling.
//
// [render.SVG]: github.com/matzehuels/regionviz/pkg/render.SVG
package regiongraph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/region"
	"github.com/matzehuels/regionviz/pkg/render/dotwriter"
)

// Options configures region graph rendering.
type Options struct {
	// OnlySimpleRegions restricts the filled, high-emphasis cluster style
	// to simple regions; non-simple regions get a plain outline and the
	// adjacent palette entry. When false every region is filled.
	OnlySimpleRegions bool

	// RegionOnly reduces the base graph to region boundary blocks
	// (entries and exits) and uses short identifier labels, showing the
	// region skeleton instead of the whole function body.
	RegionOnly bool
}

// collapsedLabel is returned for collapsed sub-region nodes. Sub-regions
// are drawn as clusters, never as ordinary nodes, so this label is not
// reachable in normal operation.
const collapsedLabel = "<sub-region>"

// paletteSize is the number of entries in the paired12 color scheme.
// Depth cycles through six adjacent filled/unfilled pairs.
const paletteSize = 12

// nodeLabel returns the display label for a graph node. Block nodes render
// the block name alone (simple) or the name followed by the block's
// instruction lines (detailed). Collapsed sub-region nodes get a fixed
// placeholder.
func nodeLabel(n region.Node, simple bool) string {
	switch n.Kind {
	case region.NodeBlock:
		return blockLabel(n.Block, simple)
	case region.NodeSubregion:
		return collapsedLabel
	}
	return collapsedLabel
}

// blockLabel formats a basic block at the requested detail level.
func blockLabel(b *cfg.Block, simple bool) string {
	if simple || len(b.Instrs) == 0 {
		return b.Name
	}
	return b.Name + ":\n" + strings.Join(b.Instrs, "\n")
}

// edgeAttrs classifies a control-flow edge for the layout engine. It
// returns "constraint=false" for back edges into an already-open region,
// so a loop's back edge cannot force the loop header below the body, and
// "" for every other edge.
func edgeAttrs(src, dst region.Node, info *region.Info) string {
	// Only block-to-block edges of the base graph are classified.
	if src.IsSubregion() || dst.IsSubregion() {
		return ""
	}

	destBB := dst.Block

	// Climb from the innermost region of destBB through the contiguous
	// chain of ancestors that still have destBB as their entry block.
	// The first ancestor with a different entry stops the walk.
	r := info.RegionFor(destBB)
	for r != nil && r.Parent() != nil {
		if r.Parent().Entry() == destBB {
			r = r.Parent()
		} else {
			break
		}
	}

	if r.Entry() == destBB && r.Contains(src.Block) {
		return "constraint=false"
	}
	return ""
}

// clusterStyle computes the (style, palette index) pair for a region
// cluster. Filled regions use the odd palette entry for their depth,
// outlined regions the adjacent even entry; the index is always in
// [1, paletteSize].
func clusterStyle(depth int, simple, onlySimple bool) (string, int) {
	if !onlySimple || simple {
		return "filled", depth*2%paletteSize + 1
	}
	return "solid", depth*2%paletteSize + 2
}

// printRegionCluster writes the cluster for r and, recursively, all of its
// descendants. Child clusters are emitted before the region's own block
// references so every cluster is fully declared inside its parent's body,
// and each block is referenced only in the cluster of the region that owns
// it directly. Blocks excluded from the base graph are not referenced -
// a reference to an undeclared id would implicitly create a node.
func printRegionCluster(r *region.Region, w *dotwriter.Writer[region.Node], depth int, onlySimple bool, include func(*cfg.Block) bool) {
	fmt.Fprintf(w.Indent(depth), "subgraph cluster_%s {\n", r.ID())
	fmt.Fprintf(w.Indent(depth+1), "label = \"\";\n")

	style, color := clusterStyle(r.Depth(), r.IsSimple(), onlySimple)
	fmt.Fprintf(w.Indent(depth+1), "style = %s;\n", style)
	fmt.Fprintf(w.Indent(depth+1), "color = %d;\n", color)

	for _, child := range r.Children() {
		printRegionCluster(child, w, depth+1, onlySimple, include)
	}

	for _, b := range r.Blocks() {
		if include(b) {
			fmt.Fprintf(w.Indent(depth+1), "%q;\n", b.Name)
		}
	}

	fmt.Fprintf(w.Indent(depth), "}\n")
}

// ToDOT renders the region decomposition of fn as a DOT document.
//
// The node and edge pass runs first through the generic writer, with the
// labeler and the edge classifier as callbacks; the cluster tree is then
// appended as a post-pass, preceded by the palette-selection directive.
// Output is deterministic: blocks, edges and regions are emitted in
// document order.
func ToDOT(fn *cfg.Function, info *region.Info, opts Options) string {
	include := includeFunc(info, opts)
	nodes, edges := baseGraph(fn, include)

	w := dotwriter.New(dotwriter.Options[region.Node]{
		Name: fmt.Sprintf("Region graph for '%s'", fn.Name()),
		GraphAttrs: []string{
			"rankdir=TB",
			"node [shape=box]",
		},
		NodeID: func(n region.Node) string {
			if n.IsSubregion() {
				return "cluster_" + n.Region.ID()
			}
			return n.Block.Name
		},
		NodeLabel: func(n region.Node) string {
			return nodeLabel(n, opts.RegionOnly)
		},
		EdgeAttrs: func(from, to region.Node) string {
			return edgeAttrs(from, to, info)
		},
		Features: func(w *dotwriter.Writer[region.Node]) {
			fmt.Fprintf(w.Indent(1), "colorscheme = \"paired12\";\n")
			printRegionCluster(info.Top(), w, 1, opts.OnlySimpleRegions, include)
		},
	})

	return w.Write(nodes, edges)
}

// includeFunc selects the block filter for the base graph. Full mode
// includes every block; region-only mode keeps just the region boundary
// blocks (entries and exits).
func includeFunc(info *region.Info, opts Options) func(*cfg.Block) bool {
	if !opts.RegionOnly {
		return func(*cfg.Block) bool { return true }
	}
	boundary := make(map[*cfg.Block]bool)
	for _, r := range info.Regions() {
		boundary[r.Entry()] = true
		if r.Exit() != nil {
			boundary[r.Exit()] = true
		}
	}
	return func(b *cfg.Block) bool { return boundary[b] }
}

// baseGraph builds the node and edge sets fed to the generic writer,
// keeping only edges whose endpoints both survive the filter.
func baseGraph(fn *cfg.Function, include func(*cfg.Block) bool) ([]region.Node, []dotwriter.Edge[region.Node]) {
	var nodes []region.Node
	for _, b := range fn.Blocks() {
		if include(b) {
			nodes = append(nodes, region.BlockNode(b))
		}
	}

	var edges []dotwriter.Edge[region.Node]
	for _, e := range fn.Edges() {
		if include(e.From) && include(e.To) {
			edges = append(edges, dotwriter.Edge[region.Node]{
				From: region.BlockNode(e.From),
				To:   region.BlockNode(e.To),
			})
		}
	}
	return nodes, edges
}
