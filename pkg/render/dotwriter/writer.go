// Package dotwriter is a generic, callback-driven Graphviz DOT serializer.
//
// The writer knows nothing about the graphs it serializes: the caller
// supplies the node and edge sets plus callbacks producing node identities,
// labels and per-edge attributes. An optional Features callback runs after
// the node/edge pass and may append arbitrary document text (subgraph
// clusters, global directives) through the writer's output stream and
// indentation helper.
//
// Emission order follows the caller-supplied slices, so output is
// deterministic for deterministic input.
package dotwriter

import (
	"bytes"
	"fmt"
	"strings"
)

// Edge is a directed edge between two nodes of the serialized graph.
type Edge[N comparable] struct {
	From N
	To   N
}

// Options configures a [Writer]. NodeID and NodeLabel are required; the
// remaining callbacks are optional.
type Options[N comparable] struct {
	// Name is the DOT graph name. Defaults to "G".
	Name string

	// GraphAttrs are document-level attribute statements emitted verbatim
	// in the graph header (e.g. "rankdir=TB").
	GraphAttrs []string

	// NodeID returns the unique DOT identifier for a node.
	NodeID func(N) string

	// NodeLabel returns the display label for a node.
	NodeLabel func(N) string

	// NodeAttrs returns extra attribute strings for a node, appended after
	// the label attribute.
	NodeAttrs func(N) []string

	// EdgeAttrs returns an attribute string for an edge, or "" for a plain
	// edge with renderer defaults.
	EdgeAttrs func(from, to N) string

	// Features runs after all nodes and edges have been written and before
	// the closing brace. It may append custom document text via the
	// writer's OStream and Indent helpers.
	Features func(*Writer[N])
}

// Writer serializes one graph to DOT text. Create it with [New] and call
// [Writer.Write] exactly once; a Writer is single-use and not safe for
// concurrent use.
type Writer[N comparable] struct {
	opts Options[N]
	buf  bytes.Buffer
}

// New creates a writer with the given options.
func New[N comparable](opts Options[N]) *Writer[N] {
	if opts.Name == "" {
		opts.Name = "G"
	}
	return &Writer[N]{opts: opts}
}

// OStream returns the writer's output stream for use by the Features
// post-pass.
func (w *Writer[N]) OStream() *bytes.Buffer { return &w.buf }

// Indent writes 2*depth spaces to the output stream and returns it, so a
// post-pass can continue the line with fmt.Fprintf.
func (w *Writer[N]) Indent(depth int) *bytes.Buffer {
	for i := 0; i < depth; i++ {
		w.buf.WriteString("  ")
	}
	return &w.buf
}

// Write serializes the graph and returns the complete DOT document.
// Nodes and edges are emitted in the order given.
func (w *Writer[N]) Write(nodes []N, edges []Edge[N]) string {
	fmt.Fprintf(&w.buf, "digraph %q {\n", w.opts.Name)
	for _, attr := range w.opts.GraphAttrs {
		fmt.Fprintf(w.Indent(1), "%s;\n", attr)
	}
	w.buf.WriteString("\n")

	for _, n := range nodes {
		attrs := []string{fmt.Sprintf("label=%q", w.opts.NodeLabel(n))}
		if w.opts.NodeAttrs != nil {
			attrs = append(attrs, w.opts.NodeAttrs(n)...)
		}
		fmt.Fprintf(w.Indent(1), "%q [%s];\n", w.opts.NodeID(n), strings.Join(attrs, ", "))
	}
	w.buf.WriteString("\n")

	for _, e := range edges {
		var extra string
		if w.opts.EdgeAttrs != nil {
			extra = w.opts.EdgeAttrs(e.From, e.To)
		}
		if extra != "" {
			fmt.Fprintf(w.Indent(1), "%q -> %q [%s];\n", w.opts.NodeID(e.From), w.opts.NodeID(e.To), extra)
		} else {
			fmt.Fprintf(w.Indent(1), "%q -> %q;\n", w.opts.NodeID(e.From), w.opts.NodeID(e.To))
		}
	}

	if w.opts.Features != nil {
		w.buf.WriteString("\n")
		w.opts.Features(w)
	}

	w.buf.WriteString("}\n")
	return w.buf.String()
}
