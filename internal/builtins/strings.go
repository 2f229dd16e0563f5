package builtins

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

// registerStrings wires spec.md §7's String family: length, upper, lower,
// trim, trimStart, trimEnd, substring, replace, replaceAll, split, join,
// startsWith, endsWith, contains, indexOf, padStart, padEnd. upper/lower
// use golang.org/x/text/cases for Unicode-aware casing (not just ASCII);
// normalize is a supplemental addition wired to unicode/norm's NFC form.
func registerStrings(r *evaluator.Registry) {
	r.Register("length", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("length requires a string argument")
		}
		return evaluator.IntegerValue(len([]rune(s))), nil
	})
	r.Register("upper", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("upper requires a string argument")
		}
		return evaluator.StringValue(upperCaser.String(s)), nil
	})
	r.Register("lower", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("lower requires a string argument")
		}
		return evaluator.StringValue(lowerCaser.String(s)), nil
	})
	r.Register("normalize", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("normalize requires a string argument")
		}
		return evaluator.StringValue(norm.NFC.String(s)), nil
	})
	r.Register("trim", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("trim requires a string argument")
		}
		return evaluator.StringValue(strings.TrimSpace(s)), nil
	})
	r.Register("trimStart", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("trimStart requires a string argument")
		}
		return evaluator.StringValue(strings.TrimLeft(s, " \t\r\n")), nil
	})
	r.Register("trimEnd", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("trimEnd requires a string argument")
		}
		return evaluator.StringValue(strings.TrimRight(s, " \t\r\n")), nil
	})
	r.Register("substring", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("substring requires a string argument")
		}
		runes := []rune(s)
		start, _ := asInt(at(args, 1))
		end := int64(len(runes))
		if e, ok := asInt(at(args, 2)); ok {
			end = e
		}
		st, en := clampRange(start, end, int64(len(runes)))
		return evaluator.StringValue(string(runes[st:en])), nil
	})
	r.Register("replace", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		old, ok2 := asString(at(args, 1))
		new_, ok3 := asString(at(args, 2))
		if !ok1 || !ok2 || !ok3 {
			return nil, ctx.NewError("replace requires three string arguments")
		}
		return evaluator.StringValue(strings.Replace(s, old, new_, 1)), nil
	})
	r.Register("replaceAll", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		old, ok2 := asString(at(args, 1))
		new_, ok3 := asString(at(args, 2))
		if !ok1 || !ok2 || !ok3 {
			return nil, ctx.NewError("replaceAll requires three string arguments")
		}
		return evaluator.StringValue(strings.ReplaceAll(s, old, new_)), nil
	})
	r.Register("split", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		sep, ok2 := asString(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("split requires two string arguments")
		}
		parts := strings.Split(s, sep)
		elems := make([]evaluator.Value, len(parts))
		for i, p := range parts {
			elems[i] = evaluator.StringValue(p)
		}
		return evaluator.NewArray(elems...), nil
	})
	r.Register("join", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		arr, ok := asArray(at(args, 0))
		if !ok {
			return nil, ctx.NewError("join requires an array argument")
		}
		sep, _ := asString(at(args, 1))
		parts := make([]string, len(arr.Elements))
		for i, el := range arr.Elements {
			if isNull(el) {
				parts[i] = ""
			} else {
				parts[i] = el.Display()
			}
		}
		return evaluator.StringValue(strings.Join(parts, sep)), nil
	})
	r.Register("startsWith", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		prefix, ok2 := asString(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("startsWith requires two string arguments")
		}
		return evaluator.BoolValue(strings.HasPrefix(s, prefix)), nil
	})
	r.Register("endsWith", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		suffix, ok2 := asString(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("endsWith requires two string arguments")
		}
		return evaluator.BoolValue(strings.HasSuffix(s, suffix)), nil
	})
	r.Register("contains", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		needle, ok2 := asString(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("contains requires two string arguments")
		}
		return evaluator.BoolValue(strings.Contains(s, needle)), nil
	})
	r.Register("indexOf", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok1 := asString(at(args, 0))
		needle, ok2 := asString(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("indexOf requires two string arguments")
		}
		return evaluator.IntegerValue(strings.Index(s, needle)), nil
	})
	r.Register("padStart", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return pad(ctx, args, true)
	})
	r.Register("padEnd", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return pad(ctx, args, false)
	})
}

func pad(ctx evaluator.BuiltinContext, args []evaluator.Value, start bool) (evaluator.Value, error) {
	s, ok := asString(at(args, 0))
	if !ok {
		return nil, ctx.NewError("pad requires a string argument")
	}
	length, _ := asInt(at(args, 1))
	fill := " "
	if f, ok := asString(at(args, 2)); ok && f != "" {
		fill = f
	}
	runes := []rune(s)
	need := int(length) - len(runes)
	if need <= 0 {
		return evaluator.StringValue(s), nil
	}
	fillRunes := []rune(fill)
	padding := make([]rune, 0, need)
	for len(padding) < need {
		padding = append(padding, fillRunes[len(padding)%len(fillRunes)])
	}
	padding = padding[:need]
	if start {
		return evaluator.StringValue(string(padding) + s), nil
	}
	return evaluator.StringValue(s + string(padding)), nil
}
