package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprlang/internal/canonjson"
)

var verifyExpr string

var verifyCmd = &cobra.Command{
	Use:   "verify <hash> [file]",
	Short: "Verify an expression's canonical JSON hash against an expected digest",
	Long: `Verify checks that evaluating the given expression and hashing its
canonical JSON form produces the expected "<algorithm>:<hex>" digest.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
}

func runVerify(_ *cobra.Command, args []string) error {
	want := args[0]
	rest := args[1:]

	value, err := evaluateForCLI(verifyExpr, rest)
	if err != nil {
		return err
	}

	algo, parseErr := canonjson.ParseAlgorithm(algoFromHashForm(want))
	if parseErr != nil {
		return fmt.Errorf("invalid expected hash %q: %w", want, parseErr)
	}
	checker := canonjson.NewIntegrityChecker(algo)
	got, err := checker.HashJSON(value)
	if err != nil {
		return err
	}

	ok, err := canonjson.Verify(want, got)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "hash mismatch: want %s, got %s\n", want, got)
		os.Exit(1)
	}
	fmt.Println("ok")
	return nil
}

func algoFromHashForm(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i]
		}
	}
	return s
}
