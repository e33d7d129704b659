package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorbox/pkg/errors"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// checkCommand validates scenes without measuring anything.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [scene]...",
		Short: "Check scenes for dangling anchors, cycles and invalid sizes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), cacheFlags{noCache: true})
			if err != nil {
				return err
			}
			defer runner.Close()

			p := newPrinter(cmd.OutOrStdout())
			failed := 0
			for _, path := range args {
				sc, err := scene.ReadFile(path)
				if err == nil {
					err = runner.Check(cmd.Context(), sc)
				}
				if err != nil {
					failed++
					p.failure("%s", path)
					if code := errors.GetCode(err); code != "" {
						p.detail("%s: %s", code, errors.UserMessage(err))
					} else {
						p.detail("%v", err)
					}
					continue
				}
				p.success("%s %s", path, StyleDim.Render(fmt.Sprintf("(%d boxes)", len(sc.Boxes))))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenes failed", failed, len(args))
			}
			return nil
		},
	}
}
