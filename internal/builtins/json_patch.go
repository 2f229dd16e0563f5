package builtins

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerJSONPatch wires jsonGet/jsonSet, a supplemental addition over raw
// JSON text that complements the hand-rolled json()/parseJson() pair:
// jsonGet queries a sub-value out of a JSON string by dotted/indexed path
// without decoding the whole document into a Value tree first, and jsonSet
// patches one in place and returns new JSON text.
func registerJSONPatch(r *evaluator.Registry) {
	r.Register("jsonGet", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		text, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("jsonGet requires a JSON string argument")
		}
		path, ok := asString(at(args, 1))
		if !ok {
			return nil, ctx.NewError("jsonGet requires a string path")
		}
		result := gjson.Get(text, path)
		if !result.Exists() {
			return evaluator.Null, nil
		}
		return gjsonToValue(result), nil
	})
	r.Register("jsonSet", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		text, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("jsonSet requires a JSON string argument")
		}
		path, ok := asString(at(args, 1))
		if !ok {
			return nil, ctx.NewError("jsonSet requires a string path")
		}
		out, err := sjson.Set(text, path, valueToNative(at(args, 2)))
		if err != nil {
			return nil, ctx.NewError("jsonSet: %s", err)
		}
		return evaluator.StringValue(out), nil
	})
}

func gjsonToValue(r gjson.Result) evaluator.Value {
	switch r.Type {
	case gjson.Null:
		return evaluator.Null
	case gjson.True:
		return evaluator.BoolValue(true)
	case gjson.False:
		return evaluator.BoolValue(false)
	case gjson.Number:
		f := r.Float()
		if f == float64(int64(f)) {
			return evaluator.IntegerValue(int64(f))
		}
		return evaluator.FloatValue(f)
	case gjson.String:
		return evaluator.StringValue(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var elems []evaluator.Value
			for _, el := range r.Array() {
				elems = append(elems, gjsonToValue(el))
			}
			return evaluator.NewArray(elems...)
		}
		obj := evaluator.NewObject()
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Set(key.String(), gjsonToValue(value))
			return true
		})
		return obj
	default:
		return evaluator.Null
	}
}

// valueToNative converts a Value into the plain Go type sjson.Set expects
// for re-encoding (map[string]any / []any / primitives).
func valueToNative(v evaluator.Value) any {
	switch val := v.(type) {
	case evaluator.NullValue:
		return nil
	case evaluator.BoolValue:
		return bool(val)
	case evaluator.IntegerValue:
		return int64(val)
	case evaluator.FloatValue:
		return float64(val)
	case evaluator.StringValue:
		return string(val)
	case *evaluator.ArrayValue:
		out := make([]any, len(val.Elements))
		for i, el := range val.Elements {
			out[i] = valueToNative(el)
		}
		return out
	case *evaluator.ObjectValue:
		out := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			el, _ := val.Get(k)
			out[k] = valueToNative(el)
		}
		return out
	default:
		return v.Display()
	}
}
