// Package io provides JSON import and export for region analysis documents.
//
// # Overview
//
// A region analysis document describes one function's control-flow graph
// together with its SESE region tree, as produced by an external region
// analysis. This package decodes such documents into the read-only views
// consumed by the renderer ([cfg.Function] and [region.Info]) and encodes
// them back for round-trip processing.
//
// # JSON Format
//
// The format has two required top-level objects:
//
//	{
//	  "function": {
//	    "name": "example",
//	    "blocks": [
//	      {"name": "entry", "instrs": ["t0 = cmp n, 0", "br t0, h, exit"]},
//	      {"name": "h"},
//	      {"name": "exit"}
//	    ],
//	    "edges": [
//	      {"from": "entry", "to": "h"},
//	      {"from": "h", "to": "exit"}
//	    ]
//	  },
//	  "regions": {
//	    "entry": "entry",
//	    "blocks": ["entry", "h", "exit"],
//	    "children": []
//	  }
//	}
//
// The first block listed is the function's entry block. The "regions" object
// is the top-level region; nested "children" objects form the region tree.
// Each region lists the blocks it owns directly - blocks claimed by a
// descendant must not be repeated in an ancestor.
//
// # Validation
//
// Decoding validates the document invariants: edge endpoints and region
// entry/exit/owned blocks must name declared blocks, and every block must be
// owned by exactly one region. Violations produce errors with the
// INVALID_DOCUMENT code; use errors.Is from pkg/errors to detect them.
//
// # Concurrency
//
// Decoded views are independent of the reader and safe for concurrent reads;
// nothing in this package mutates them after return.
package io
