package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/regionviz/internal/config"
	"github.com/matzehuels/regionviz/pkg/cache"
	"github.com/matzehuels/regionviz/pkg/errors"
	"github.com/matzehuels/regionviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "pdf"
	scale      float64  // PNG scale factor
	noCache    bool     // bypass the artifact cache
	onlySimple bool     // highlight only simple regions
	regionOnly bool     // show region boundary blocks only
}

// newRenderCmd creates the render command for generating image artifacts.
// It lays out the region graph with Graphviz and supports SVG, PNG, and
// PDF output, caching finished artifacts by content hash.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the region graph to SVG, PNG, or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&opts.onlySimple, "only-simple", false, "fill only simple regions, outline the rest")
	cmd.Flags().BoolVar(&opts.regionOnly, "region-only", false, "show only region boundary blocks")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "pdf": true}

// validateFormats checks that all requested formats are valid.
// It returns an error if any format is not in validFormats.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'pdf')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .pdf), it strips that extension.
// This is used when generating multiple files (e.g., graph.svg, graph.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender executes the pipeline and writes one file per requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	conf := configFromContext(ctx)

	store, err := openCache(ctx, conf, opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, logger)
	defer runner.Close()

	spinner := NewSpinner("Rendering region graph")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:             input,
		Formats:           opts.formats,
		Scale:             opts.scale,
		OnlySimpleRegions: opts.onlySimple || conf.OnlySimpleRegions,
		RegionOnly:        opts.regionOnly,
		Refresh:           opts.noCache,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(result, input, opts)
}

// writeArtifacts writes the rendered artifacts to disk. With a single
// format the --output path is used as-is; with several it becomes the
// base path.
func writeArtifacts(result *pipeline.Result, input string, opts *renderOpts) error {
	single := len(opts.formats) == 1

	for _, format := range opts.formats {
		path := basePath(opts.output, input) + "." + format
		if single && opts.output != "" {
			path = opts.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return err
		}
		out.Close()

		if result.CacheHits[format] {
			printSuccess("Generated %s %s", path, StyleDim.Render("(cached)"))
		} else {
			printSuccess("Generated %s", path)
		}
	}
	return nil
}

// openCache constructs the cache backend selected by the configuration.
// --no-cache and the "off" backend both yield the null cache.
func openCache(ctx context.Context, conf config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch conf.Cache.Backend {
	case config.BackendOff:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, conf.Cache.RedisAddr)
	case config.BackendFile:
		return cache.NewFileCache(conf.Cache.Dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend: %s", conf.Cache.Backend)
	}
}
