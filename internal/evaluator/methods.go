package evaluator

import (
	"sort"
	"strings"
)

type stringMethod func(e *Evaluator, recv StringValue, args []Value) (Value, error)
type arrayMethod func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error)
type objectMethod func(e *Evaluator, recv *ObjectValue, args []Value) (Value, error)

// stringMethods is the fixed method table §4.4 names for String receivers:
// uppercase, lowercase, trim, split, substring, contains, startsWith,
// endsWith, replace, indexOf.
var stringMethods = map[string]stringMethod{
	"uppercase":  func(e *Evaluator, recv StringValue, args []Value) (Value, error) { return StringValue(strings.ToUpper(string(recv))), nil },
	"lowercase":  func(e *Evaluator, recv StringValue, args []Value) (Value, error) { return StringValue(strings.ToLower(string(recv))), nil },
	"trim":       func(e *Evaluator, recv StringValue, args []Value) (Value, error) { return StringValue(strings.TrimSpace(string(recv))), nil },
	"split": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		sep, ok := arg(args, 0).(StringValue)
		if !ok {
			return nil, e.errorf("%q requires a string separator", "split")
		}
		parts := strings.Split(string(recv), string(sep))
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i] = StringValue(p)
		}
		return &ArrayValue{Elements: elems}, nil
	},
	"substring": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		runes := []rune(recv)
		start, ok := arg(args, 0).(IntegerValue)
		if !ok {
			return nil, e.errorf("%q requires an integer start index", "substring")
		}
		end := int64(len(runes))
		if endArg, ok := arg(args, 1).(IntegerValue); ok {
			end = int64(endArg)
		}
		s, en := clampRange(int64(start), end, int64(len(runes)))
		return StringValue(string(runes[s:en])), nil
	},
	"contains": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		needle, ok := arg(args, 0).(StringValue)
		if !ok {
			return nil, e.errorf("%q requires a string argument", "contains")
		}
		return BoolValue(strings.Contains(string(recv), string(needle))), nil
	},
	"startsWith": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		prefix, ok := arg(args, 0).(StringValue)
		if !ok {
			return nil, e.errorf("%q requires a string argument", "startsWith")
		}
		return BoolValue(strings.HasPrefix(string(recv), string(prefix))), nil
	},
	"endsWith": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		suffix, ok := arg(args, 0).(StringValue)
		if !ok {
			return nil, e.errorf("%q requires a string argument", "endsWith")
		}
		return BoolValue(strings.HasSuffix(string(recv), string(suffix))), nil
	},
	"replace": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		old, ok1 := arg(args, 0).(StringValue)
		new_, ok2 := arg(args, 1).(StringValue)
		if !ok1 || !ok2 {
			return nil, e.errorf("%q requires two string arguments", "replace")
		}
		return StringValue(strings.ReplaceAll(string(recv), string(old), string(new_))), nil
	},
	"indexOf": func(e *Evaluator, recv StringValue, args []Value) (Value, error) {
		needle, ok := arg(args, 0).(StringValue)
		if !ok {
			return nil, e.errorf("%q requires a string argument", "indexOf")
		}
		return IntegerValue(strings.Index(string(recv), string(needle))), nil
	},
}

// clampRange clamps [start, end) into [0, length] the way substring/slice
// tolerate out-of-range bounds rather than failing.
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

// arrayMethods is the fixed method table §4.4 names for Array receivers:
// join, contains, indexOf, map, filter/where, reduce, slice, reverse, sort,
// find, every, some/any.
var arrayMethods = map[string]arrayMethod{
	"join": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		sep := ""
		if s, ok := arg(args, 0).(StringValue); ok {
			sep = string(s)
		}
		parts := make([]string, len(recv.Elements))
		for i, el := range recv.Elements {
			parts[i] = stringifyOperand(el)
		}
		return StringValue(strings.Join(parts, sep)), nil
	},
	"contains": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		needle := arg(args, 0)
		for _, el := range recv.Elements {
			if Equal(el, needle) {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	},
	"indexOf": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		needle := arg(args, 0)
		for i, el := range recv.Elements {
			if Equal(el, needle) {
				return IntegerValue(i), nil
			}
		}
		return IntegerValue(-1), nil
	},
	"map": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		fn, err := requireLambda(e, arg(args, 0), "map")
		if err != nil {
			return nil, err
		}
		out := make([]Value, len(recv.Elements))
		for i, el := range recv.Elements {
			v, err := e.CallLambda(fn, []Value{el, IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &ArrayValue{Elements: out}, nil
	},
	"filter": arrayFilter,
	"where":  arrayFilter,
	"reduce": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		fn, err := requireLambda(e, arg(args, 0), "reduce")
		if err != nil {
			return nil, err
		}
		acc := arg(args, 1)
		for i, el := range recv.Elements {
			acc, err = e.CallLambda(fn, []Value{acc, el, IntegerValue(i)})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	},
	"slice": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		start := int64(0)
		if s, ok := arg(args, 0).(IntegerValue); ok {
			start = int64(s)
		}
		end := int64(len(recv.Elements))
		if en, ok := arg(args, 1).(IntegerValue); ok {
			end = int64(en)
		}
		s, en := clampRange(start, end, int64(len(recv.Elements)))
		out := make([]Value, en-s)
		copy(out, recv.Elements[s:en])
		return &ArrayValue{Elements: out}, nil
	},
	"reverse": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		out := make([]Value, len(recv.Elements))
		for i, el := range recv.Elements {
			out[len(out)-1-i] = el
		}
		return &ArrayValue{Elements: out}, nil
	},
	"sort": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		out := make([]Value, len(recv.Elements))
		copy(out, recv.Elements)
		if comparator := arg(args, 0); comparator != Null {
			fn, err := requireLambda(e, comparator, "sort")
			if err != nil {
				return nil, err
			}
			var sortErr error
			sort.SliceStable(out, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				v, err := e.CallLambda(fn, []Value{out[i], out[j]})
				if err != nil {
					sortErr = err
					return false
				}
				n, ok := v.(IntegerValue)
				if !ok {
					if f, ok := v.(FloatValue); ok {
						return float64(f) < 0
					}
					sortErr = e.errorf("sort comparator must return a number")
					return false
				}
				return n < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return &ArrayValue{Elements: out}, nil
		}
		sort.SliceStable(out, func(i, j int) bool {
			cmp, ok := Compare(out[i], out[j])
			return ok && cmp < 0
		})
		return &ArrayValue{Elements: out}, nil
	},
	"find": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		fn, err := requireLambda(e, arg(args, 0), "find")
		if err != nil {
			return nil, err
		}
		for i, el := range recv.Elements {
			v, err := e.CallLambda(fn, []Value{el, IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if Truthy(v) {
				return el, nil
			}
		}
		return Null, nil
	},
	"every": func(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
		fn, err := requireLambda(e, arg(args, 0), "every")
		if err != nil {
			return nil, err
		}
		for i, el := range recv.Elements {
			v, err := e.CallLambda(fn, []Value{el, IntegerValue(i)})
			if err != nil {
				return nil, err
			}
			if !Truthy(v) {
				return BoolValue(false), nil
			}
		}
		return BoolValue(true), nil
	},
	"some": arraySome,
	"any":  arraySome,
}

func arrayFilter(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
	fn, err := requireLambda(e, arg(args, 0), "filter")
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(recv.Elements))
	for i, el := range recv.Elements {
		v, err := e.CallLambda(fn, []Value{el, IntegerValue(i)})
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			out = append(out, el)
		}
	}
	return &ArrayValue{Elements: out}, nil
}

func arraySome(e *Evaluator, recv *ArrayValue, args []Value) (Value, error) {
	fn, err := requireLambda(e, arg(args, 0), "some")
	if err != nil {
		return nil, err
	}
	for i, el := range recv.Elements {
		v, err := e.CallLambda(fn, []Value{el, IntegerValue(i)})
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			return BoolValue(true), nil
		}
	}
	return BoolValue(false), nil
}

// objectMethods is the fixed method table §4.4 names for Object receivers:
// keys, values, entries, containsKey, containsValue.
var objectMethods = map[string]objectMethod{
	"keys": func(e *Evaluator, recv *ObjectValue, args []Value) (Value, error) {
		out := make([]Value, 0, recv.Len())
		for _, k := range recv.Keys() {
			out = append(out, StringValue(k))
		}
		return &ArrayValue{Elements: out}, nil
	},
	"values": func(e *Evaluator, recv *ObjectValue, args []Value) (Value, error) {
		out := make([]Value, 0, recv.Len())
		for _, k := range recv.Keys() {
			v, _ := recv.Get(k)
			out = append(out, v)
		}
		return &ArrayValue{Elements: out}, nil
	},
	"entries": func(e *Evaluator, recv *ObjectValue, args []Value) (Value, error) {
		out := make([]Value, 0, recv.Len())
		for _, k := range recv.Keys() {
			v, _ := recv.Get(k)
			out = append(out, &ArrayValue{Elements: []Value{StringValue(k), v}})
		}
		return &ArrayValue{Elements: out}, nil
	},
	"containsKey": func(e *Evaluator, recv *ObjectValue, args []Value) (Value, error) {
		key, ok := arg(args, 0).(StringValue)
		if !ok {
			return nil, e.errorf("%q requires a string argument", "containsKey")
		}
		_, found := recv.Get(string(key))
		return BoolValue(found), nil
	},
	"containsValue": func(e *Evaluator, recv *ObjectValue, args []Value) (Value, error) {
		needle := arg(args, 0)
		for _, k := range recv.Keys() {
			v, _ := recv.Get(k)
			if Equal(v, needle) {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	},
}
