// Package pkg provides the core libraries for regionviz control-flow
// region visualization.
//
// # Overview
//
// regionviz draws the single-entry single-exit (SESE) region decomposition
// of a control-flow graph as nested Graphviz clusters, one cluster per
// region, colored by nesting depth. The pkg directory is organized into
// five main areas:
//
//  1. [cfg] - Control-flow graph structure (basic blocks and edges)
//  2. [region] - Region tree views and document validation
//  3. [render] - DOT generation and image conversion
//  4. [pipeline] - Orchestration (load → graph → render)
//  5. [cache] / [observability] / [errors] - Infrastructure
//
// # Architecture
//
// The typical data flow through regionviz:
//
//	Region analysis document (JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [cfg] + [region] packages (graph and tree views)
//	         ↓
//	    [render/regiongraph] package (DOT with nested clusters)
//	         ↓
//	    [render] package (SVG/PNG/PDF via Graphviz and rsvg)
//
// # Quick Start
//
// Load a document and render the region graph:
//
//	import (
//	    "context"
//	    regionio "github.com/matzehuels/regionviz/pkg/io"
//	    "github.com/matzehuels/regionviz/pkg/render"
//	    "github.com/matzehuels/regionviz/pkg/render/regiongraph"
//	)
//
//	// 1. Load the analysis document
//	fn, info, _ := regionio.ImportJSON("loop.json")
//
//	// 2. Generate DOT
//	dot := regiongraph.ToDOT(fn, info, regiongraph.Options{})
//
//	// 3. Render to SVG
//	svg, _ := render.SVG(context.Background(), dot)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:   "loop.json",
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [cfg] - Basic blocks and control-flow edges of a single function, with
// deterministic document-order iteration.
//
// [region] - The SESE region tree: per-region entry, exit, owned blocks,
// children, and depth, plus the ownership index mapping each block to its
// innermost region.
//
// [io] - JSON interchange for region analysis documents produced by an
// external analyzer.
//
// [render/dotwriter] - Generic callback-driven DOT serializer.
//
// [render/regiongraph] - The region graph itself: node labels, back-edge
// layout constraints, and the nested cluster tree.
//
// [render] - Format conversion (DOT to SVG via Graphviz, SVG to PDF/PNG).
//
// [pipeline] - Complete visualization pipeline (load → graph → render)
// used by the CLI and the local web viewer.
//
// [cache] - Artifact cache keyed by content hash, with file, Redis, and
// null backends.
//
// [observability] - Optional pipeline and cache hooks for metrics and
// tracing.
//
// [errors] - Structured errors with stable machine-readable codes.
//
// [cfg]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/cfg
// [region]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/region
// [io]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/render
// [render/dotwriter]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/render/dotwriter
// [render/regiongraph]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/render/regiongraph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/regionviz/pkg/errors
package pkg
