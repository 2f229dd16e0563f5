package builtins

import (
	"sort"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerArrays wires spec.md §7's Array family: first, last, at, slice,
// reverse, sort, unique, flatten, map, filter, reduce, find, findIndex,
// every, some, count, groupBy, sortBy, pluck, zip, range. map/filter/find/
// findIndex/every/some/sortBy require a Lambda argument.
func registerArrays(r *evaluator.Registry) {
	r.Register("first", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("first requires an array argument")
		}
		if len(arr.Elements) == 0 {
			return evaluator.Null, nil
		}
		return arr.Elements[0], nil
	})
	r.Register("last", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("last requires an array argument")
		}
		if len(arr.Elements) == 0 {
			return evaluator.Null, nil
		}
		return arr.Elements[len(arr.Elements)-1], nil
	})
	r.Register("at", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("at requires an array argument")
		}
		idx, ok := asInt(at(args, 1))
		if !ok {
			return nil, ctx.NewError("at requires an integer index")
		}
		if idx < 0 {
			idx += int64(len(arr.Elements))
		}
		if idx < 0 || idx >= int64(len(arr.Elements)) {
			return evaluator.Null, nil
		}
		return arr.Elements[idx], nil
	})
	r.Register("slice", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("slice requires an array argument")
		}
		start, _ := asInt(at(args, 1))
		end := int64(len(arr.Elements))
		if e, ok := asInt(at(args, 2)); ok {
			end = e
		}
		st, en := clampRange(start, end, int64(len(arr.Elements)))
		out := make([]evaluator.Value, en-st)
		copy(out, arr.Elements[st:en])
		return evaluator.NewArray(out...), nil
	})
	r.Register("reverse", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("reverse requires an array argument")
		}
		out := make([]evaluator.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			out[len(out)-1-i] = el
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("sort", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("sort requires an array argument")
		}
		out := append([]evaluator.Value(nil), arr.Elements...)
		sort.SliceStable(out, func(i, j int) bool {
			cmp, ok := evaluator.Compare(out[i], out[j])
			return ok && cmp < 0
		})
		return evaluator.NewArray(out...), nil
	})
	r.Register("unique", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("unique requires an array argument")
		}
		out := make([]evaluator.Value, 0, len(arr.Elements))
		for _, el := range arr.Elements {
			seen := false
			for _, kept := range out {
				if evaluator.Equal(kept, el) {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, el)
			}
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("flatten", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("flatten requires an array argument")
		}
		out := make([]evaluator.Value, 0, len(arr.Elements))
		for _, el := range arr.Elements {
			if inner, ok := asArray(el); ok {
				out = append(out, inner.Elements...)
			} else {
				out = append(out, el)
			}
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("map", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "map")
		if err != nil {
			return nil, err
		}
		out := make([]evaluator.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("filter", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "filter")
		if err != nil {
			return nil, err
		}
		out := make([]evaluator.Value, 0, len(arr.Elements))
		for i, el := range arr.Elements {
			v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if evaluator.Truthy(v) {
				out = append(out, el)
			}
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("reduce", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "reduce")
		if err != nil {
			return nil, err
		}
		acc := at(args, 2)
		for i, el := range arr.Elements {
			acc, err = ctx.CallLambda(fn, []evaluator.Value{acc, el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})
	r.Register("find", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "find")
		if err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if evaluator.Truthy(v) {
				return el, nil
			}
		}
		return evaluator.Null, nil
	})
	r.Register("findIndex", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "findIndex")
		if err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if evaluator.Truthy(v) {
				return evaluator.IntegerValue(i), nil
			}
		}
		return evaluator.IntegerValue(-1), nil
	})
	r.Register("every", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "every")
		if err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if !evaluator.Truthy(v) {
				return evaluator.BoolValue(false), nil
			}
		}
		return evaluator.BoolValue(true), nil
	})
	r.Register("some", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "some")
		if err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if evaluator.Truthy(v) {
				return evaluator.BoolValue(true), nil
			}
		}
		return evaluator.BoolValue(false), nil
	})
	r.Register("count", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("count requires an array argument")
		}
		if fn, ok := asLambda(at(args, 1)); ok {
			n := 0
			for i, el := range arr.Elements {
				v, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
				if err != nil {
					return nil, err
				}
				if evaluator.Truthy(v) {
					n++
				}
			}
			return evaluator.IntegerValue(n), nil
		}
		return evaluator.IntegerValue(len(arr.Elements)), nil
	})
	r.Register("groupBy", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "groupBy")
		if err != nil {
			return nil, err
		}
		groups := evaluator.NewObject()
		for i, el := range arr.Elements {
			key, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			keyStr := key.Display()
			if existing, ok := groups.Get(keyStr); ok {
				existingArr := existing.(*evaluator.ArrayValue)
				existingArr.Elements = append(existingArr.Elements, el)
			} else {
				groups.Set(keyStr, evaluator.NewArray(el))
			}
		}
		return groups, nil
	})
	r.Register("sortBy", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, fn, err := arrayAndLambda(ctx, args, "sortBy")
		if err != nil {
			return nil, err
		}
		out := append([]evaluator.Value(nil), arr.Elements...)
		keys := make([]evaluator.Value, len(out))
		for i, el := range out {
			k, err := ctx.CallLambda(fn, []evaluator.Value{el, evaluator.IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			keys[i] = k
		}
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool {
			cmp, ok := evaluator.Compare(keys[idx[i]], keys[idx[j]])
			return ok && cmp < 0
		})
		sorted := make([]evaluator.Value, len(out))
		for i, j := range idx {
			sorted[i] = out[j]
		}
		return evaluator.NewArray(sorted...), nil
	})
	r.Register("pluck", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("pluck requires an array argument")
		}
		key, ok := asString(at(args, 1))
		if !ok {
			return nil, ctx.NewError("pluck requires a string key")
		}
		out := make([]evaluator.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			obj, ok := asObject(el)
			if !ok {
				out[i] = evaluator.Null
				continue
			}
			v, ok := obj.Get(key)
			if !ok {
				out[i] = evaluator.Null
				continue
			}
			out[i] = v
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("zip", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		a, ok1 := asArray(at(args, 0))
		b, ok2 := asArray(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("zip requires two array arguments")
		}
		n := len(a.Elements)
		if len(b.Elements) < n {
			n = len(b.Elements)
		}
		out := make([]evaluator.Value, n)
		for i := 0; i < n; i++ {
			out[i] = evaluator.NewArray(a.Elements[i], b.Elements[i])
		}
		return evaluator.NewArray(out...), nil
	})
	r.Register("range", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		start, ok := asInt(at(args, 0))
		if !ok {
			return nil, ctx.NewError("range requires an integer argument")
		}
		end, hasEnd := asInt(at(args, 1))
		if !hasEnd {
			start, end = 0, start
		}
		step := int64(1)
		if s, ok := asInt(at(args, 2)); ok && s != 0 {
			step = s
		}
		var out []evaluator.Value
		if step > 0 {
			for v := start; v < end; v += step {
				out = append(out, evaluator.IntegerValue(v))
			}
		} else {
			for v := start; v > end; v += step {
				out = append(out, evaluator.IntegerValue(v))
			}
		}
		return evaluator.NewArray(out...), nil
	})
}

func arrayAndLambda(ctx evaluator.BuiltinContext, args []evaluator.Value, name string) (*evaluator.ArrayValue, *evaluator.LambdaValue, error) {
	arr, ok := asArray(at(args, 0))
	if !ok {
		return nil, nil, ctx.NewError("%s requires an array argument", name)
	}
	fn, ok := asLambda(at(args, 1))
	if !ok {
		return nil, nil, ctx.NewError("%s requires a lambda argument", name)
	}
	return arr, fn, nil
}
