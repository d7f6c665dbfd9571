package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/regionviz/pkg/cache"
	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/errors"
	regionio "github.com/matzehuels/regionviz/pkg/io"
	"github.com/matzehuels/regionviz/pkg/observability"
	"github.com/matzehuels/regionviz/pkg/region"
	"github.com/matzehuels/regionviz/pkg/render"
	"github.com/matzehuels/regionviz/pkg/render/regiongraph"
)

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → graph → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheHits: make(map[string]bool),
	}

	// Stage 1: Load
	loadStart := time.Now()
	fn, info, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	result.Function = fn
	result.Info = info
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded document",
		"function", fn.Name(),
		"blocks", fn.BlockCount(),
		"regions", len(info.Regions()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Graph
	result.DOT = BuildDOT(fn, info, opts)

	// Stage 3: Render
	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	for _, format := range opts.Formats {
		data, hit, err := r.RenderArtifact(ctx, result.DOT, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, err
		}
		result.Artifacts[format] = data
		result.CacheHits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes the document at path, reporting to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, path string) (*cfg.Function, *region.Info, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	fn, info, err := regionio.ImportJSON(path)

	blocks, regions := 0, 0
	if err == nil {
		blocks, regions = fn.BlockCount(), len(info.Regions())
	}
	hooks.OnLoadComplete(ctx, path, blocks, regions, time.Since(start), err)
	return fn, info, err
}

// BuildDOT generates the DOT document for the loaded views.
func BuildDOT(fn *cfg.Function, info *region.Info, opts Options) string {
	return regiongraph.ToDOT(fn, info, regiongraph.Options{
		OnlySimpleRegions: opts.OnlySimpleRegions,
		RegionOnly:        opts.RegionOnly,
	})
}

// RenderArtifact produces a single artifact, replaying a cached copy when
// one exists. The second return value reports a cache hit. SVG comes
// straight from Graphviz; PNG and PDF are converted from the SVG with
// rsvg-convert.
func (r *Runner) RenderArtifact(ctx context.Context, dot, format string, opts Options) ([]byte, bool, error) {
	hooks := observability.Cache()
	key := cache.ArtifactKey(dot, format, opts.Scale)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, key)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, key)
	}

	svg, err := render.SVG(ctx, dot)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "layout %s", format)
	}

	var data []byte
	switch format {
	case "svg":
		data = svg
	case "png":
		data, err = render.ToPNG(svg, opts.Scale)
	case "pdf":
		data, err = render.ToPDF(svg)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "convert %s", format)
	}

	if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err == nil {
		hooks.OnCacheSet(ctx, key, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
