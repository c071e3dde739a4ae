package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// Options carries the collaborators a command tree needs. Zero values select
// the terminal defaults.
type Options struct {
	// Prompt drives --interactive. Nil uses survey on the terminal.
	Prompt PromptDriver
}

// NewRootCommand builds the autofixture command tree.
func NewRootCommand(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "autofixture",
		Short: "Generate randomised test fixtures from a template and specs",
		Long: `autofixture fills a template object with random values that satisfy per-field
specs such as "string[8]", "0 < integer < 10" or "skip". Templates come from
fixture definition files, OpenAPI component schemas or JSON Schema documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default from AUTOFIXTURE_LOG_LEVEL)")

	root.AddCommand(newGenerateCommand(opts))
	root.AddCommand(newParseCommand())
	root.AddCommand(newVersionCommand())
	return root
}
