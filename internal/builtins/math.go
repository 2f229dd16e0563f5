package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerMath wires spec.md §7's Math family: abs, ceil, floor, round,
// min, max, sum, avg, pow, sqrt, log, sin, cos, tan, random, clamp.
func registerMath(r *evaluator.Registry) {
	unary := map[string]func(float64) float64{
		"abs":   math.Abs,
		"ceil":  math.Ceil,
		"floor": math.Floor,
		"round": math.Round,
		"sqrt":  math.Sqrt,
		"log":   math.Log,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
	}
	for name, fn := range unary {
		fn := fn
		name := name
		r.Register(name, func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
			n, ok := asNumber(at(args, 0))
			if !ok {
				return nil, ctx.NewError("%s requires a number argument", name)
			}
			return numericFromFloat(at(args, 0), fn(n)), nil
		})
	}
	r.Register("min", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return reduceNumeric(ctx, args, "min", func(a, b float64) float64 { return math.Min(a, b) })
	})
	r.Register("max", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return reduceNumeric(ctx, args, "max", func(a, b float64) float64 { return math.Max(a, b) })
	})
	r.Register("sum", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		nums, err := numericOperands(ctx, args, "sum")
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return evaluator.FloatValue(total), nil
	})
	r.Register("avg", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		nums, err := numericOperands(ctx, args, "avg")
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return evaluator.Null, nil
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return evaluator.FloatValue(total / float64(len(nums))), nil
	})
	r.Register("pow", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		base, ok1 := asNumber(at(args, 0))
		exp, ok2 := asNumber(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("pow requires two number arguments")
		}
		return evaluator.FloatValue(math.Pow(base, exp)), nil
	})
	r.Register("random", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.FloatValue(rand.Float64()), nil
	})
	r.Register("clamp", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		n, ok1 := asNumber(at(args, 0))
		lo, ok2 := asNumber(at(args, 1))
		hi, ok3 := asNumber(at(args, 2))
		if !ok1 || !ok2 || !ok3 {
			return nil, ctx.NewError("clamp requires three number arguments")
		}
		switch {
		case n < lo:
			return numericFromFloat(at(args, 1), lo), nil
		case n > hi:
			return numericFromFloat(at(args, 2), hi), nil
		default:
			return numericFromFloat(at(args, 0), n), nil
		}
	})
}

// numericFromFloat narrows result back to Integer when the operand that
// produced it was itself an Integer and the result is exact, mirroring the
// evaluator's own numericResult narrowing rule.
func numericFromFloat(operand evaluator.Value, result float64) evaluator.Value {
	if _, ok := operand.(evaluator.IntegerValue); ok && result == math.Trunc(result) {
		return evaluator.IntegerValue(int64(result))
	}
	return evaluator.FloatValue(result)
}

func numericOperands(ctx evaluator.BuiltinContext, args []evaluator.Value, name string) ([]float64, error) {
	if len(args) == 1 {
		if arr, ok := asArray(args[0]); ok {
			return numericOperands(ctx, arr.Elements, name)
		}
	}
	out := make([]float64, 0, len(args))
	for _, a := range args {
		n, ok := asNumber(a)
		if !ok {
			return nil, ctx.NewError("%s requires numbers (or an array of numbers)", name)
		}
		out = append(out, n)
	}
	return out, nil
}

func reduceNumeric(ctx evaluator.BuiltinContext, args []evaluator.Value, name string, fn func(a, b float64) float64) (evaluator.Value, error) {
	nums, err := numericOperands(ctx, args, name)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return evaluator.Null, nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result = fn(result, n)
	}
	return evaluator.FloatValue(result), nil
}
