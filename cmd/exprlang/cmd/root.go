package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "exprlang",
	Short: "Expression language evaluator and canonical JSON toolkit",
	Long: `exprlang evaluates expression-language source and provides the
canonical JSON / content-hash integrity tooling that backs it:

  - eval:   evaluate an expression and print its result
  - canon:  canonicalize a JSON value
  - hash:   compute a content hash over a value
  - verify: check a value's hash against an expected digest`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
