package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evalExpr string

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate an expression from a file or inline source",
	Long: `Evaluate expression-language source from a file or inline text.

Examples:
  exprlang eval -e "1 + 2 * 3"
  exprlang eval script.expr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
}

func runEval(_ *cobra.Command, args []string) error {
	result, err := evaluateForCLI(evalExpr, args)
	if err != nil {
		return err
	}
	fmt.Println(result.Display())
	return nil
}
