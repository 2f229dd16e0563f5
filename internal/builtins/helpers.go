// Package builtins registers the FunctionRegistry's standard library:
// String, Math, Array, Object, Type, Date, and Utility families, plus the
// pipe-filter table and the canonicalizer/integrity bridge functions.
package builtins

import (
	"github.com/cwbudde/exprlang/internal/evaluator"
)

func at(args []evaluator.Value, i int) evaluator.Value {
	if i < len(args) {
		return args[i]
	}
	return evaluator.Null
}

func asString(v evaluator.Value) (string, bool) {
	s, ok := v.(evaluator.StringValue)
	return string(s), ok
}

func asInt(v evaluator.Value) (int64, bool) {
	i, ok := v.(evaluator.IntegerValue)
	return int64(i), ok
}

func asNumber(v evaluator.Value) (float64, bool) {
	n, ok := v.(evaluator.Numeric)
	if !ok {
		return 0, false
	}
	return n.Float(), true
}

func asArray(v evaluator.Value) (*evaluator.ArrayValue, bool) {
	a, ok := v.(*evaluator.ArrayValue)
	return a, ok
}

func asObject(v evaluator.Value) (*evaluator.ObjectValue, bool) {
	o, ok := v.(*evaluator.ObjectValue)
	return o, ok
}

func asLambda(v evaluator.Value) (*evaluator.LambdaValue, bool) {
	l, ok := v.(*evaluator.LambdaValue)
	return l, ok
}

func isNull(v evaluator.Value) bool {
	_, ok := v.(evaluator.NullValue)
	return ok || v == nil
}

func clampRange(start, end, length int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return start, end
}
