package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/pipeline"
	"github.com/matzehuels/regionviz/pkg/region"
	"github.com/matzehuels/regionviz/pkg/render/regiongraph"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	output     string // output file path (stdout if empty)
	onlySimple bool   // highlight only simple regions
	regionOnly bool   // show region boundary blocks only
}

// newDotCmd creates the dot command for emitting the raw DOT document.
// The output feeds external Graphviz tooling; use render for images.
func newDotCmd() *cobra.Command {
	var opts dotOpts

	cmd := &cobra.Command{
		Use:   "dot [file]",
		Short: "Print the region graph as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if omitted)")
	cmd.Flags().BoolVar(&opts.onlySimple, "only-simple", false, "fill only simple regions, outline the rest")
	cmd.Flags().BoolVar(&opts.regionOnly, "region-only", false, "show only region boundary blocks")

	return cmd
}

// runDot loads the analysis document and writes the DOT text.
func runDot(ctx context.Context, input string, opts *dotOpts) error {
	logger := loggerFromContext(ctx)
	conf := configFromContext(ctx)
	p := newProgress(logger)

	fn, info, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %q: %d blocks, %d regions", fn.Name(), fn.BlockCount(), len(info.Regions()))

	dot := regiongraph.ToDOT(fn, info, regiongraph.Options{
		OnlySimpleRegions: opts.onlySimple || conf.OnlySimpleRegions,
		RegionOnly:        opts.regionOnly,
	})

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.WriteString(out, dot); err != nil {
		return err
	}
	if opts.output != "" {
		p.done(fmt.Sprintf("Generated %s", opts.output))
	}
	return nil
}

// loadDocument imports the analysis document through the pipeline's load
// stage, so every command reports to the same observability hooks.
func loadDocument(ctx context.Context, input string) (*cfg.Function, *region.Info, error) {
	return pipeline.NewRunner(nil, loggerFromContext(ctx)).Load(ctx, input)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
