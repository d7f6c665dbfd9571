// Package pipeline provides the core visualization pipeline for regionviz.
//
// This package implements the complete load → graph → render pipeline that
// can be used by the CLI and the local web viewer. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode and validate the region analysis document
//  2. Graph: Build the DOT text for the region decomposition
//  3. Render: Generate artifacts in the requested formats (SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Input:   "loop.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/errors"
	"github.com/matzehuels/regionviz/pkg/region"
)

// DefaultScale is the PNG scale factor used when Options.Scale is zero.
const DefaultScale = 2.0

// ArtifactTTL is how long rendered artifacts stay in the cache.
const ArtifactTTL = 7 * 24 * time.Hour

// Options configures a pipeline run.
type Options struct {
	// Input is the path of the region analysis document.
	Input string

	// Formats lists the artifact formats to produce ("svg", "png", "pdf").
	// Defaults to ["svg"].
	Formats []string

	// Scale is the PNG scale factor. Defaults to DefaultScale.
	Scale float64

	// OnlySimpleRegions fills only simple regions and outlines the rest.
	OnlySimpleRegions bool

	// RegionOnly reduces the graph to region boundary blocks.
	RegionOnly bool

	// Refresh bypasses the artifact cache and re-renders everything.
	Refresh bool
}

// validFormats is the set of supported artifact formats.
var validFormats = map[string]bool{"svg": true, "png": true, "pdf": true}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{"svg"}
	}
	for _, f := range o.Formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'pdf')", f)
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return nil
}

// Stats records per-stage timing for a pipeline run.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
}

// Result holds the outputs of a pipeline run.
type Result struct {
	// Function and Info are the loaded document views.
	Function *cfg.Function
	Info     *region.Info

	// DOT is the generated DOT document.
	DOT string

	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte

	// CacheHits maps format to whether the artifact was replayed from cache.
	CacheHits map[string]bool

	// Stats holds per-stage timing.
	Stats Stats
}
