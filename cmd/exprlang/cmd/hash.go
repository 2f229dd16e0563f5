package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprlang/internal/canonjson"
)

var (
	hashExpr string
	hashAlgo string
)

var hashCmd = &cobra.Command{
	Use:   "hash [file]",
	Short: "Compute a content hash over an expression's canonical JSON form",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVarP(&hashExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	hashCmd.Flags().StringVarP(&hashAlgo, "algo", "a", "sha256", "hash algorithm: sha256, sha384, sha512, md5")
}

func runHash(_ *cobra.Command, args []string) error {
	value, err := evaluateForCLI(hashExpr, args)
	if err != nil {
		return err
	}
	algo, err := canonjson.ParseAlgorithm(hashAlgo)
	if err != nil {
		return err
	}
	checker := canonjson.NewIntegrityChecker(algo)
	digest, err := checker.HashJSON(value)
	if err != nil {
		return err
	}
	fmt.Println(digest)
	return nil
}
