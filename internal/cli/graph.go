package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorbox/pkg/pipeline"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// graphCommand draws a scene's anchor graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		cf     cacheFlags
	)
	opts := pipeline.Options{GraphFormat: pipeline.DefaultGraphFormat}

	cmd := &cobra.Command{
		Use:   "graph [scene]",
		Short: "Draw the anchor graph of a scene as SVG or DOT",
		Long: `Draw the anchor graph of a scene as SVG or DOT.

Every box is a node and every anchor an arrow to the box it is anchored to.
Scenes with anchor cycles are drawn too, which helps to find the cycle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cf)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts.Logger = c.Logger
			data, cached, err := runner.GraphWithCacheInfo(cmd.Context(), sc, opts)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".graph." + opts.GraphFormat
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Drew anchor graph of %s", args[0])
			p.file(output)
			if cached {
				p.detail(iconCached)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.GraphFormat, "format", "f", opts.GraphFormat, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show sizes and resolved rectangles")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached output")
	cf.register(cmd)

	return cmd
}
