package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprlang/internal/builtins"
	"github.com/cwbudde/exprlang/internal/canonjson"
	"github.com/cwbudde/exprlang/internal/evaluator"
	"github.com/cwbudde/exprlang/internal/parser"
)

var canonExpr string

var canonCmd = &cobra.Command{
	Use:   "canon [file]",
	Short: "Print the canonical JSON form of an expression's result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCanon,
}

func init() {
	rootCmd.AddCommand(canonCmd)
	canonCmd.Flags().StringVarP(&canonExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
}

func runCanon(_ *cobra.Command, args []string) error {
	value, err := evaluateForCLI(canonExpr, args)
	if err != nil {
		return err
	}
	fmt.Println(canonjson.Encode(value))
	return nil
}

// evaluateForCLI is the shared source-resolution + evaluation path used by
// eval/canon/hash/verify, so the file-vs-inline decision is not repeated in
// every subcommand.
func evaluateForCLI(inline string, args []string) (evaluator.Value, error) {
	var source string
	switch {
	case inline != "":
		source = inline
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return nil, fmt.Errorf("either provide a file path or use -e for inline source")
	}

	expr, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	env := evaluator.NewEnvironment()
	registry := builtins.NewStandardRegistry()
	builtins.RegisterStandardFilters(registry)

	result, err := evaluator.Evaluate(expr, env, registry)
	if err != nil {
		return nil, fmt.Errorf("evaluation error: %w", err)
	}
	return result, nil
}
