package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/exprlang/internal/canonjson"
	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerUtility wires spec.md §7's Utility family: coalesce, default, if,
// switch, format, json, parseJson.
func registerUtility(r *evaluator.Registry) {
	r.Register("coalesce", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		for _, a := range args {
			if !isNull(a) {
				return a, nil
			}
		}
		return evaluator.Null, nil
	})
	r.Register("default", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		v := at(args, 0)
		if isNull(v) {
			return at(args, 1), nil
		}
		return v, nil
	})
	r.Register("if", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		if evaluator.Truthy(at(args, 0)) {
			return at(args, 1), nil
		}
		return at(args, 2), nil
	})
	r.Register("switch", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) == 0 {
			return evaluator.Null, nil
		}
		value := args[0]
		rest := args[1:]
		i := 0
		for ; i+1 < len(rest); i += 2 {
			if evaluator.Equal(value, rest[i]) {
				return rest[i+1], nil
			}
		}
		if i < len(rest) {
			return rest[i], nil
		}
		return evaluator.Null, nil
	})
	r.Register("format", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		tmpl, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("format requires a string template")
		}
		rest := args[1:]
		var b strings.Builder
		i := 0
		for i < len(tmpl) {
			if tmpl[i] == '{' {
				if end := strings.IndexByte(tmpl[i:], '}'); end > 0 {
					idxStr := tmpl[i+1 : i+end]
					if n, err := strconv.Atoi(idxStr); err == nil && n >= 0 {
						if n < len(rest) {
							b.WriteString(stringifyFormatArg(rest[n]))
						}
						i += end + 1
						continue
					}
				}
			}
			b.WriteByte(tmpl[i])
			i++
		}
		return evaluator.StringValue(b.String()), nil
	})
	r.Register("json", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.StringValue(canonjson.Encode(at(args, 0))), nil
	})
	r.Register("parseJson", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("parseJson requires a string argument")
		}
		v, rest, err := parseJSONValue(s)
		if err != nil {
			return nil, ctx.NewError("parseJson: %s", err)
		}
		if strings.TrimSpace(rest) != "" {
			return nil, ctx.NewError("parseJson: unexpected trailing input")
		}
		return v, nil
	})
}

func stringifyFormatArg(v evaluator.Value) string {
	if isNull(v) {
		return ""
	}
	return v.Display()
}

// parseJSONValue is a hand-rolled recursive-descent JSON parser accepting
// null, true, false, signed decimal numbers, escaped strings, arrays, and
// objects — the §7 "parseJson" contract, kept separate from the
// canonicalizer since it consumes arbitrary JSON text rather than emitting
// the canonical subset.
func parseJSONValue(s string) (evaluator.Value, string, error) {
	s = skipSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("unexpected end of input")
	}
	switch {
	case strings.HasPrefix(s, "null"):
		return evaluator.Null, s[4:], nil
	case strings.HasPrefix(s, "true"):
		return evaluator.BoolValue(true), s[4:], nil
	case strings.HasPrefix(s, "false"):
		return evaluator.BoolValue(false), s[5:], nil
	case s[0] == '"':
		return parseJSONString(s)
	case s[0] == '[':
		return parseJSONArray(s)
	case s[0] == '{':
		return parseJSONObject(s)
	default:
		return parseJSONNumber(s)
	}
}

func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t\r\n")
}

func parseJSONString(s string) (evaluator.Value, string, error) {
	if s == "" || s[0] != '"' {
		return nil, "", fmt.Errorf("expected string")
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '"' {
			return evaluator.StringValue(b.String()), s[i+1:], nil
		}
		if c == '\\' {
			if i+1 >= len(s) {
				return nil, "", fmt.Errorf("unterminated escape")
			}
			switch s[i+1] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '/':
				b.WriteByte('/')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				if i+6 > len(s) {
					return nil, "", fmt.Errorf("short unicode escape")
				}
				code, err := strconv.ParseInt(s[i+2:i+6], 16, 32)
				if err != nil {
					return nil, "", fmt.Errorf("invalid unicode escape: %w", err)
				}
				b.WriteRune(rune(code))
				i += 4
			default:
				return nil, "", fmt.Errorf("invalid escape \\%c", s[i+1])
			}
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return nil, "", fmt.Errorf("unterminated string")
}

func parseJSONNumber(s string) (evaluator.Value, string, error) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	isFloat := false
	if i < len(s) && s[i] == '.' {
		isFloat = true
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		isFloat = true
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if start == i {
		return nil, "", fmt.Errorf("invalid number")
	}
	text := s[:i]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, "", err
		}
		return evaluator.FloatValue(f), s[i:], nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, "", err
	}
	return evaluator.IntegerValue(n), s[i:], nil
}

func parseJSONArray(s string) (evaluator.Value, string, error) {
	s = s[1:]
	s = skipSpace(s)
	elems := make([]evaluator.Value, 0)
	if strings.HasPrefix(s, "]") {
		return evaluator.NewArray(elems...), s[1:], nil
	}
	for {
		v, rest, err := parseJSONValue(s)
		if err != nil {
			return nil, "", err
		}
		elems = append(elems, v)
		rest = skipSpace(rest)
		if strings.HasPrefix(rest, ",") {
			s = skipSpace(rest[1:])
			continue
		}
		if strings.HasPrefix(rest, "]") {
			return evaluator.NewArray(elems...), rest[1:], nil
		}
		return nil, "", fmt.Errorf("expected ',' or ']' in array")
	}
}

func parseJSONObject(s string) (evaluator.Value, string, error) {
	s = s[1:]
	s = skipSpace(s)
	obj := evaluator.NewObject()
	if strings.HasPrefix(s, "}") {
		return obj, s[1:], nil
	}
	for {
		s = skipSpace(s)
		keyVal, rest, err := parseJSONString(s)
		if err != nil {
			return nil, "", err
		}
		key := string(keyVal.(evaluator.StringValue))
		rest = skipSpace(rest)
		if !strings.HasPrefix(rest, ":") {
			return nil, "", fmt.Errorf("expected ':' in object")
		}
		rest = skipSpace(rest[1:])
		v, rest2, err := parseJSONValue(rest)
		if err != nil {
			return nil, "", err
		}
		obj.Set(key, v)
		rest2 = skipSpace(rest2)
		if strings.HasPrefix(rest2, ",") {
			s = rest2[1:]
			continue
		}
		if strings.HasPrefix(rest2, "}") {
			return obj, rest2[1:], nil
		}
		return nil, "", fmt.Errorf("expected ',' or '}' in object")
	}
}
