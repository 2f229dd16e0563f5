package evaluator_test

import (
	"testing"

	xerrors "github.com/cwbudde/exprlang/internal/errors"
	"github.com/cwbudde/exprlang/internal/evaluator"
	"github.com/cwbudde/exprlang/internal/parser"
)

func eval(t *testing.T, src string, env *evaluator.Environment) evaluator.Value {
	t.Helper()
	expr, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	if env == nil {
		env = evaluator.NewEnvironment()
	}
	v, err := evaluator.Evaluate(expr, env, evaluator.NewRegistry())
	if err != nil {
		t.Fatalf("eval(%q): %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, src string, env *evaluator.Environment) error {
	t.Helper()
	expr, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	if env == nil {
		env = evaluator.NewEnvironment()
	}
	_, err = evaluator.Evaluate(expr, env, evaluator.NewRegistry())
	if err == nil {
		t.Fatalf("eval(%q): expected error, got none", src)
	}
	return err
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2", "3"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"10 / 4", "2.5"},
		{"10 % 3", "1"},
		{"2 ** 10", "1024"},
		{"2 ** 0.5", "1.4142135623730951"},
		{"-5 + 2", "-3"},
		{"\"a\" + \"b\"", "ab"},
		{"[1, 2] + [3]", "[1, 2, 3]"},
	}
	for _, c := range cases {
		got := eval(t, c.src, nil)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	evalErr(t, "1 / 0", nil)
}

func TestModuloByZero(t *testing.T) {
	evalErr(t, "1 % 0", nil)
}

func TestComparisonAndEquality(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 2", true},
		{"1 == 1.0", true},
		{"1 != 2", true},
		{"\"a\" < \"b\"", true},
		{"null == null", true},
	}
	for _, c := range cases {
		got := eval(t, c.src, nil)
		b, ok := got.(evaluator.BoolValue)
		if !ok || bool(b) != c.want {
			t.Errorf("%s: got %v, want %v", c.src, got, c.want)
		}
	}
}

func TestShortCircuitLogical(t *testing.T) {
	got := eval(t, "false and (1/0 == 0)", nil)
	if got.Display() != "false" {
		t.Fatalf("expected short-circuit to avoid division by zero, got %v", got)
	}
	got = eval(t, "true or (1/0 == 0)", nil)
	if got.Display() != "true" {
		t.Fatalf("expected short-circuit to avoid division by zero, got %v", got)
	}
}

func TestConditional(t *testing.T) {
	got := eval(t, "1 < 2 ? \"yes\" : \"no\"", nil)
	if got.Display() != "yes" {
		t.Fatalf("got %v", got)
	}
}

func TestOptionalChaining(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("x", evaluator.Null)
	got := eval(t, "x?.name", env)
	if _, ok := got.(evaluator.NullValue); !ok {
		t.Fatalf("expected null, got %v", got)
	}
}

func TestMemberReservedNames(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("xs", evaluator.NewArray(evaluator.IntegerValue(1), evaluator.IntegerValue(2), evaluator.IntegerValue(3)))
	cases := []struct {
		src  string
		want string
	}{
		{"xs.length", "3"},
		{"xs.first", "1"},
		{"xs.last", "3"},
		{"xs.isEmpty", "false"},
		{"xs.isNotEmpty", "true"},
	}
	for _, c := range cases {
		got := eval(t, c.src, env)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestIndexing(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("xs", evaluator.NewArray(evaluator.IntegerValue(10), evaluator.IntegerValue(20)))
	got := eval(t, "xs[1]", env)
	if got.Display() != "20" {
		t.Fatalf("got %v", got)
	}
	evalErr(t, "xs[5]", env)
}

func TestLambdaAndClosure(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("add", eval(t, "(a, b) => a + b", nil))
	got := eval(t, "add(2, 3)", env)
	if got.Display() != "5" {
		t.Fatalf("got %v", got)
	}
}

func TestArrayHigherOrderMethods(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("xs", evaluator.NewArray(evaluator.IntegerValue(1), evaluator.IntegerValue(2), evaluator.IntegerValue(3)))
	cases := []struct {
		src  string
		want string
	}{
		{"xs.map(x => x * 2)", "[2, 4, 6]"},
		{"xs.filter(x => x > 1)", "[2, 3]"},
		{"xs.reduce((acc, x) => acc + x, 0)", "6"},
		{"xs.find(x => x > 1)", "2"},
		{"xs.every(x => x > 0)", "true"},
		{"xs.some(x => x > 2)", "true"},
		{"xs.join(\"-\")", "1-2-3"},
		{"xs.contains(2)", "true"},
		{"xs.indexOf(3)", "2"},
		{"xs.reverse()", "[3, 2, 1]"},
		{"xs.slice(1, 2)", "[2]"},
	}
	for _, c := range cases {
		got := eval(t, c.src, env)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestStringMethods(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("s", evaluator.StringValue("Hello World"))
	cases := []struct {
		src  string
		want string
	}{
		{"s.uppercase()", "HELLO WORLD"},
		{"s.lowercase()", "hello world"},
		{"s.contains(\"World\")", "true"},
		{"s.startsWith(\"Hello\")", "true"},
		{"s.endsWith(\"World\")", "true"},
		{"s.replace(\"World\", \"There\")", "Hello There"},
		{"s.indexOf(\"World\")", "6"},
	}
	for _, c := range cases {
		got := eval(t, c.src, env)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestObjectMethods(t *testing.T) {
	env := evaluator.NewEnvironment()
	got := eval(t, `{a: 1, b: 2}.keys()`, env)
	if got.Display() != `["a", "b"]` {
		t.Fatalf("got %v", got)
	}
	got = eval(t, `{a: 1, b: 2}.containsKey("a")`, env)
	if got.Display() != "true" {
		t.Fatalf("got %v", got)
	}
}

func TestPipeFilter(t *testing.T) {
	env := evaluator.NewEnvironment()
	registry := evaluator.NewRegistry()
	registry.Register("upper", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := args[0].(evaluator.StringValue)
		if !ok {
			return nil, ctx.NewError("upper requires a string")
		}
		return evaluator.StringValue(stringsToUpper(string(s))), nil
	})
	expr, err := parser.Parse(`"hi" | upper`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := evaluator.Evaluate(expr, env, registry)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got.Display() != "HI" {
		t.Fatalf("got %v", got)
	}
}

func stringsToUpper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 32
		}
	}
	return string(out)
}

func TestStringInterpolation(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Define("name", evaluator.StringValue("World"))
	got := eval(t, "${name}", env)
	if got.Display() != "World" {
		t.Fatalf("got %v", got)
	}
}

func TestUndefinedIdentifier(t *testing.T) {
	evalErr(t, "doesNotExist", nil)
}

func TestUnknownFunction(t *testing.T) {
	evalErr(t, "doesNotExist()", nil)
}

func TestNestedLambdaErrorCarriesTrace(t *testing.T) {
	// An error raised inside the innermost of two nested lambda calls
	// should carry a two-frame trace by the time it reaches the caller.
	err := evalErr(t, "[1].map(x => [2].map(y => 1 / 0))", nil)
	evalErrPtr, ok := err.(*xerrors.EvalError)
	if !ok {
		t.Fatalf("error = %#v, want *errors.EvalError", err)
	}
	if len(evalErrPtr.Trace) != 2 {
		t.Fatalf("Trace = %#v, want 2 frames", evalErrPtr.Trace)
	}
}
