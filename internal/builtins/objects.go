package builtins

import (
	"strings"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerObjects wires spec.md §7's Object family: keys, values, entries,
// fromEntries, merge, pick, omit, get (dotted-path lookup with default),
// has.
func registerObjects(r *evaluator.Registry) {
	r.Register("keys", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		obj, ok := asObject(at(args, 0))
		if !ok {
			return nil, ctx.NewError("keys requires an object argument")
		}
		out := make([]evaluator.Value, 0, obj.Len())
		for _, k := range obj.Keys() {
			out = append(out, evaluator.StringValue(k))
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("values", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		obj, ok := asObject(at(args, 0))
		if !ok {
			return nil, ctx.NewError("values requires an object argument")
		}
		out := make([]evaluator.Value, 0, obj.Len())
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			out = append(out, v)
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("entries", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		obj, ok := asObject(at(args, 0))
		if !ok {
			return nil, ctx.NewError("entries requires an object argument")
		}
		out := make([]evaluator.Value, 0, obj.Len())
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			out = append(out, evaluator.NewArray(evaluator.StringValue(k), v))
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("fromEntries", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("fromEntries requires an array argument")
		}
		obj := evaluator.NewObject()
		for _, el := range arr.Elements {
			pair, ok := asArray(el)
			if !ok || len(pair.Elements) < 2 {
				return nil, ctx.NewError("fromEntries requires an array of [key, value] pairs")
			}
			key, ok := asString(pair.Elements[0])
			if !ok {
				return nil, ctx.NewError("fromEntries entry keys must be strings")
			}
			obj.Set(key, pair.Elements[1])
		}
		return obj, nil
	})
	r.Register("merge", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		out := evaluator.NewObject()
		for _, a := range args {
			obj, ok := asObject(a)
			if !ok {
				return nil, ctx.NewError("merge requires object arguments")
			}
			for _, k := range obj.Keys() {
				v, _ := obj.Get(k)
				out.Set(k, v)
			}
		}
		return out, nil
	})
	r.Register("pick", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		obj, ok := asObject(at(args, 0))
		if !ok {
			return nil, ctx.NewError("pick requires an object argument")
		}
		keys, ok := asArray(at(args, 1))
		if !ok {
			return nil, ctx.NewError("pick requires an array of keys")
		}
		out := evaluator.NewObject()
		for _, k := range keys.Elements {
			key, ok := asString(k)
			if !ok {
				continue
			}
			if v, ok := obj.Get(key); ok {
				out.Set(key, v)
			}
		}
		return out, nil
	})
	r.Register("omit", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		obj, ok := asObject(at(args, 0))
		if !ok {
			return nil, ctx.NewError("omit requires an object argument")
		}
		keys, ok := asArray(at(args, 1))
		if !ok {
			return nil, ctx.NewError("omit requires an array of keys")
		}
		excluded := make(map[string]bool, len(keys.Elements))
		for _, k := range keys.Elements {
			if s, ok := asString(k); ok {
				excluded[s] = true
			}
		}
		out := evaluator.NewObject()
		for _, k := range obj.Keys() {
			if excluded[k] {
				continue
			}
			v, _ := obj.Get(k)
			out.Set(k, v)
		}
		return out, nil
	})
	r.Register("get", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		path, ok := asString(at(args, 1))
		if !ok {
			return nil, ctx.NewError("get requires a string path")
		}
		def := at(args, 2)
		cur := at(args, 0)
		for _, segment := range strings.Split(path, ".") {
			obj, ok := asObject(cur)
			if !ok {
				return def, nil
			}
			v, ok := obj.Get(segment)
			if !ok {
				return def, nil
			}
			cur = v
		}
		return cur, nil
	})
	r.Register("has", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		obj, ok := asObject(at(args, 0))
		if !ok {
			return nil, ctx.NewError("has requires an object argument")
		}
		key, ok := asString(at(args, 1))
		if !ok {
			return nil, ctx.NewError("has requires a string key")
		}
		_, found := obj.Get(key)
		return evaluator.BoolValue(found), nil
	})
}
