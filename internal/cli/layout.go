package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/anchorbox/pkg/layout"
	"github.com/matzehuels/anchorbox/pkg/pipeline"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		jobs    int
		cf      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [scene.toml|scene.json]...",
		Short: "Compute box positions for one or more scenes",
		Long: `Compute box positions for one or more scenes.

Each scene is written to <scene>.layout.json next to its input, or to the
file given with -o when there is a single input ("-" for stdout). Multiple
scenes are laid out concurrently.

Results are cached locally, keyed by scene content.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output needs a single input, got %d", len(args))
			}
			return c.runLayout(cmd.Context(), cmd, args, output, refresh, jobs, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "scenes laid out in parallel")
	cf.register(cmd)

	return cmd
}

// layoutOutcome is the result of one scene, printed in input order.
type layoutOutcome struct {
	input  string
	output string
	result *layout.Result
	cached bool
}

func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, inputs []string, output string, refresh bool, jobs int, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	msg := "Laying out " + filepath.Base(inputs[0])
	if len(inputs) > 1 {
		msg = fmt.Sprintf("Laying out %d scenes", len(inputs))
	}
	spinner := c.spinner(ctx, cmd.ErrOrStderr(), msg)
	prog := newProgress(c.Logger)

	outcomes := make([]layoutOutcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))
	for i, input := range inputs {
		g.Go(func() error {
			out, err := c.layoutScene(gctx, runner, input, output, refresh, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if output == "-" {
		return nil
	}

	p := newPrinter(cmd.OutOrStdout())
	for _, o := range outcomes {
		p.success("Laid out %s", o.input)
		p.file(o.output)
		p.stats(o.result.Width, o.result.Height, len(o.result.Boxes), o.result.Measurements, o.cached)
	}
	if len(inputs) > 1 {
		prog.done(fmt.Sprintf("Laid out %d scenes", len(inputs)))
	}
	p.newline()
	p.nextStep("Inspect", appName+" inspect "+inputs[0])
	return nil
}

// layoutScene runs one scene and writes its result file.
func (c *CLI) layoutScene(ctx context.Context, runner *pipeline.Runner, input, output string, refresh bool, stdout io.Writer) (layoutOutcome, error) {
	sc, err := scene.ReadFile(input)
	if err != nil {
		return layoutOutcome{}, err
	}
	res, cached, err := runner.LayoutWithCacheInfo(ctx, sc, pipeline.Options{Refresh: refresh})
	if err != nil {
		return layoutOutcome{}, fmt.Errorf("%s: %w", input, err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeResult(output, res, stdout); err != nil {
		return layoutOutcome{}, err
	}
	return layoutOutcome{input: input, output: output, result: res, cached: cached}, nil
}

// writeResult writes res as indented JSON to path, or to stdout for "-".
func writeResult(path string, res *layout.Result, stdout io.Writer) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
