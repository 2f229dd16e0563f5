package builtins

import (
	"github.com/cwbudde/exprlang/internal/canonjson"
	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerSupplement wires the two bridge functions between the Function
// registry and the Canonicalizer/Integrity subsystems: stringify produces
// the canonical-JSON encoding of any Value, and hash exposes multi-
// algorithm content hashing directly from expressions.
func registerSupplement(r *evaluator.Registry) {
	r.Register("stringify", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.StringValue(canonjson.Encode(at(args, 0))), nil
	})
	r.Register("hash", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		algoName, ok := asString(at(args, 1))
		if !ok {
			algoName = "sha256"
		}
		algo, err := canonjson.ParseAlgorithm(algoName)
		if err != nil {
			return nil, ctx.NewError("hash: %s", err)
		}
		checker := canonjson.NewIntegrityChecker(algo)
		out, err := checker.HashJSON(at(args, 0))
		if err != nil {
			return nil, ctx.NewError("hash: %s", err)
		}
		return evaluator.StringValue(out), nil
	})
}
