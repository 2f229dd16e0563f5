package builtins_test

import (
	"testing"

	"github.com/cwbudde/exprlang/internal/builtins"
	"github.com/cwbudde/exprlang/internal/evaluator"
	"github.com/cwbudde/exprlang/internal/parser"
)

func evalWith(t *testing.T, src string) evaluator.Value {
	t.Helper()
	expr, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	env := evaluator.NewEnvironment()
	registry := builtins.NewStandardRegistry()
	v, err := evaluator.Evaluate(expr, env, registry)
	if err != nil {
		t.Fatalf("eval(%q): %v", src, err)
	}
	return v
}

func TestStringBuiltins(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`upper("hi")`, "HI"},
		{`lower("HI")`, "hi"},
		{`trim("  hi  ")`, "hi"},
		{`length("hello")`, "5"},
		{`split("a,b,c", ",")`, `["a", "b", "c"]`},
		{`join(["a", "b"], "-")`, "a-b"},
		{`padStart("5", 3, "0")`, "005"},
		{`replaceAll("aaa", "a", "b")`, "bbb"},
	}
	for _, c := range cases {
		got := evalWith(t, c.src)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestMathBuiltins(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"abs(-5)", "5"},
		{"max(1, 5, 3)", "5"},
		{"min(1, 5, 3)", "1"},
		{"sum([1, 2, 3])", "6"},
		{"clamp(10, 0, 5)", "5"},
	}
	for _, c := range cases {
		got := evalWith(t, c.src)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestArrayBuiltins(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"range(5)", "[0, 1, 2, 3, 4]"},
		{"unique([1, 1, 2, 2, 3])", "[1, 2, 3]"},
		{"flatten([[1, 2], [3]])", "[1, 2, 3]"},
		{"at([1, 2, 3], -1)", "3"},
		{"map([1, 2], x => x * 10)", "[10, 20]"},
	}
	for _, c := range cases {
		got := evalWith(t, c.src)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestObjectBuiltins(t *testing.T) {
	got := evalWith(t, `get({a: {b: 1}}, "a.b", 0)`)
	if got.Display() != "1" {
		t.Fatalf("got %v", got)
	}
	got = evalWith(t, `merge({a: 1}, {b: 2})`)
	if got.Display() != `{a: 1, b: 2}` {
		t.Fatalf("got %v", got)
	}
}

func TestUtilityBuiltins(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`coalesce(null, null, "x")`, "x"},
		{`if(true, "yes", "no")`, "yes"},
		{`format("{0} and {1}", "a", "b")`, "a and b"},
		{`switch(2, 1, "one", 2, "two", "other")`, "two"},
	}
	for _, c := range cases {
		got := evalWith(t, c.src)
		if got.Display() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Display(), c.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	got := evalWith(t, `parseJson(json({a: 1, b: [1, 2]}))`)
	if got.Display() != `{a: 1, b: [1, 2]}` {
		t.Fatalf("got %v", got)
	}
}

func TestJSONPatchBuiltins(t *testing.T) {
	got := evalWith(t, `jsonGet("{\"a\":{\"b\":1}}", "a.b")`)
	if got.Display() != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestHashBuiltin(t *testing.T) {
	got := evalWith(t, `hash("hello")`)
	s, ok := got.(evaluator.StringValue)
	if !ok || len(string(s)) == 0 {
		t.Fatalf("got %v", got)
	}
}
