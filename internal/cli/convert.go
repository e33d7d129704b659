package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorbox/pkg/scene"
)

// convertCommand rewrites a scene in another format.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a scene between TOML and JSON",
		Long: `Convert a scene between TOML and JSON. Formats follow the file extensions.
The scene is validated on the way, so convert also normalizes value syntax
("exactly:10" becomes "exact:10").`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			container, err := sc.Container()
			if err != nil {
				return err
			}
			if err := scene.WriteFile(args[1], scene.FromContainer(sc.Name, container)); err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.success("Converted %s", args[0])
			p.file(args[1])
			return nil
		},
	}
}
