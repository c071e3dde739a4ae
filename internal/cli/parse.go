package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-autofixture/pkg/spec"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <spec>...",
		Short: "Check spec strings and print their canonical form",
		Example: `  autofixture parse "string[8]" "4 < integer < 8"
  autofixture parse "number >= 3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, raw := range args {
				c, err := spec.Parse(raw)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%q\terror: %v\n", raw, err)
					continue
				}
				fmt.Fprintf(out, "%q\t%s\n", raw, c)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d specs are invalid", failed, len(args))
			}
			return nil
		},
	}
}
