package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorbox/pkg/pipeline"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// inspectCommand lays out a scene and browses the result.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		cf    cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Lay out a scene and browse the placed boxes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cf)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			res, err := runner.Layout(cmd.Context(), sc, pipeline.Options{})
			if err != nil {
				return err
			}

			if plain {
				p := newPrinter(cmd.OutOrStdout())
				p.line(StyleTitle.Render(sc.Name) + StyleDim.Render(fmt.Sprintf("  %dx%d", res.Width, res.Height)))
				p.line(placementTable(res, placementRows(res), -1).Render())
				return nil
			}

			model := NewInspectModel(sc.Name, res, sc.Boxes)
			_, err = tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table instead of the interactive view")
	cf.register(cmd)

	return cmd
}
