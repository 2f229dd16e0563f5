package builtins

import (
	"strconv"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerTypes wires spec.md §7's Types family: type, isNull, isNumber,
// isString, isBool, isArray, isObject, toNumber, toString, toBool, toArray.
func registerTypes(r *evaluator.Registry) {
	r.Register("type", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.StringValue(evaluator.TypeName(at(args, 0))), nil
	})
	predicates := map[string]evaluator.ValueKind{
		"isBool":   evaluator.KindBool,
		"isString": evaluator.KindString,
		"isArray":  evaluator.KindArray,
		"isObject": evaluator.KindObject,
	}
	for name, kind := range predicates {
		kind := kind
		r.Register(name, func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
			return evaluator.BoolValue(at(args, 0).Kind() == kind), nil
		})
	}
	r.Register("isNull", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.BoolValue(isNull(at(args, 0))), nil
	})
	r.Register("isNumber", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		_, ok := asNumber(at(args, 0))
		return evaluator.BoolValue(ok), nil
	})
	r.Register("toNumber", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		v := at(args, 0)
		if n, ok := asNumber(v); ok {
			return numericFromFloat(v, n), nil
		}
		if s, ok := asString(v); ok {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return evaluator.IntegerValue(i), nil
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return evaluator.FloatValue(f), nil
			}
		}
		if b, ok := v.(evaluator.BoolValue); ok {
			if b {
				return evaluator.IntegerValue(1), nil
			}
			return evaluator.IntegerValue(0), nil
		}
		return evaluator.Null, nil
	})
	r.Register("toString", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		v := at(args, 0)
		if isNull(v) {
			return evaluator.StringValue(""), nil
		}
		return evaluator.StringValue(v.Display()), nil
	})
	r.Register("toBool", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.BoolValue(evaluator.Truthy(at(args, 0))), nil
	})
	r.Register("toArray", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		v := at(args, 0)
		if arr, ok := asArray(v); ok {
			return arr, nil
		}
		if isNull(v) {
			return evaluator.NewArray(), nil
		}
		return evaluator.NewArray(v), nil
	})
}
