package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/regionviz/pkg/errors"
	"github.com/matzehuels/regionviz/pkg/render"
	"github.com/matzehuels/regionviz/pkg/render/regiongraph"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	onlySimple bool // highlight only simple regions
	regionOnly bool // show region boundary blocks only
}

// newViewCmd creates the view command, which renders the region graph to a
// temporary SVG and opens it with the system viewer.
func newViewCmd() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Render the region graph and open it in the system viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.onlySimple, "only-simple", false, "fill only simple regions, outline the rest")
	cmd.Flags().BoolVar(&opts.regionOnly, "region-only", false, "show only region boundary blocks")

	return cmd
}

// runView renders the graph to a uniquely named file under the system temp
// directory and hands it to the platform opener. The file is left behind
// for the viewer to read.
func runView(ctx context.Context, input string, opts *viewOpts) error {
	logger := loggerFromContext(ctx)
	conf := configFromContext(ctx)

	fn, info, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}

	dot := regiongraph.ToDOT(fn, info, regiongraph.Options{
		OnlySimpleRegions: opts.onlySimple || conf.OnlySimpleRegions,
		RegionOnly:        opts.regionOnly,
	})

	svg, err := render.SVG(ctx, dot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "layout %q", fn.Name())
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("regionviz-%s.svg", uuid.NewString()))
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeViewer, err, "write %s", path)
	}
	logger.Debugf("Wrote %s (%d bytes)", path, len(svg))

	if err := openViewer(path); err != nil {
		return err
	}
	printSuccess("Opened %s in the system viewer", filepath.Base(path))
	return nil
}

// openViewer launches the platform file opener for path without waiting
// for the viewer to exit.
func openViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeViewer, err, "open viewer for %s", path)
	}
	return nil
}
