package parser

import (
	"testing"

	"github.com/cwbudde/exprlang/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return expr
}

func TestParse_Precedence_MultiplicationBeforeAddition(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3)
	expr := mustParse(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("root = %#v, want top-level '+'", expr)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("right = %#v, want '*'", bin.Right)
	}
}

func TestParse_Grouping(t *testing.T) {
	expr := mustParse(t, "(1 + 2) * 3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != "*" {
		t.Fatalf("root = %#v, want top-level '*'", expr)
	}
	if _, ok := bin.Left.(*ast.GroupingExpr); !ok {
		t.Fatalf("left = %#v, want GroupingExpr", bin.Left)
	}
}

func TestParse_PowerRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 must parse as 2 ** (3 ** 2)
	expr := mustParse(t, "2 ** 3 ** 2")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != "**" {
		t.Fatalf("root = %#v, want '**'", expr)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("right = %#v, want nested '**'", bin.Right)
	}
	if _, ok := bin.Left.(*ast.LiteralExpr); !ok {
		t.Fatalf("left = %#v, want literal 2", bin.Left)
	}
}

func TestParse_UnaryMinusBeforePower(t *testing.T) {
	// -2 ** 2 parses as -(2 ** 2): unary's operand is parsed by another
	// parseUnary, which falls through to parsePower when there is no
	// further prefix operator, so the whole power expression becomes the
	// unary's operand rather than just its left-hand side.
	expr := mustParse(t, "-2 ** 2")
	un, ok := expr.(*ast.UnaryExpr)
	if !ok || un.Op != "-" {
		t.Fatalf("root = %#v, want unary '-'", expr)
	}
	if _, ok := un.Operand.(*ast.BinaryExpr); !ok {
		t.Fatalf("operand = %#v, want '**' binary", un.Operand)
	}
}

func TestParse_PipeTighterThanUnary(t *testing.T) {
	// "!x | f" parses as "!(x | f)": unary wraps the whole pipe expression.
	expr := mustParse(t, "!x | f")
	un, ok := expr.(*ast.UnaryExpr)
	if !ok || un.Op != "!" {
		t.Fatalf("root = %#v, want unary '!'", expr)
	}
	if _, ok := un.Operand.(*ast.PipeExpr); !ok {
		t.Fatalf("operand = %#v, want PipeExpr", un.Operand)
	}
}

func TestParse_OptionalChaining(t *testing.T) {
	expr := mustParse(t, "user?.profile?.email")
	outer, ok := expr.(*ast.MemberExpr)
	if !ok || !outer.Optional || outer.Name != "email" {
		t.Fatalf("root = %#v, want optional member 'email'", expr)
	}
	inner, ok := outer.Object.(*ast.MemberExpr)
	if !ok || !inner.Optional || inner.Name != "profile" {
		t.Fatalf("inner = %#v, want optional member 'profile'", outer.Object)
	}
}

func TestParse_LambdaSingleParam(t *testing.T) {
	expr := mustParse(t, "x => x * 2")
	lam, ok := expr.(*ast.LambdaExpr)
	if !ok || len(lam.Params) != 1 || lam.Params[0] != "x" {
		t.Fatalf("root = %#v, want single-param lambda", expr)
	}
}

func TestParse_LambdaMultiParamParens(t *testing.T) {
	expr := mustParse(t, "(a, b) => a + b")
	lam, ok := expr.(*ast.LambdaExpr)
	if !ok || len(lam.Params) != 2 || lam.Params[0] != "a" || lam.Params[1] != "b" {
		t.Fatalf("root = %#v, want two-param lambda", expr)
	}
}

func TestParse_LambdaZeroParam(t *testing.T) {
	expr := mustParse(t, "() => 1")
	lam, ok := expr.(*ast.LambdaExpr)
	if !ok || len(lam.Params) != 0 {
		t.Fatalf("root = %#v, want zero-param lambda", expr)
	}
}

func TestParse_EmptyGroupingIsError(t *testing.T) {
	if _, err := Parse("()"); err == nil {
		t.Fatal("expected ParseError for empty grouping")
	}
}

func TestParse_PipeWithFilterArgs(t *testing.T) {
	expr := mustParse(t, `items | filter(x => x.active) | map(x => x.name) | join(", ")`)
	top, ok := expr.(*ast.PipeExpr)
	if !ok {
		t.Fatalf("root = %#v, want PipeExpr", expr)
	}
	call, ok := top.Filter.(*ast.CallExpr)
	if !ok {
		t.Fatalf("filter = %#v, want CallExpr", top.Filter)
	}
	if callee, ok := call.Callee.(*ast.IdentifierExpr); !ok || callee.Name != "join" {
		t.Fatalf("callee = %#v, want 'join'", call.Callee)
	}
}

func TestParse_ConditionalTernary(t *testing.T) {
	expr := mustParse(t, "a ? b : c")
	cond, ok := expr.(*ast.ConditionalExpr)
	if !ok {
		t.Fatalf("root = %#v, want ConditionalExpr", expr)
	}
	if _, ok := cond.Cond.(*ast.IdentifierExpr); !ok {
		t.Fatalf("cond = %#v, want IdentifierExpr", cond.Cond)
	}
}

func TestParse_InterpolationPrimary(t *testing.T) {
	expr := mustParse(t, "${name}")
	interp, ok := expr.(*ast.InterpolationExpr)
	if !ok || len(interp.Parts) != 1 {
		t.Fatalf("root = %#v, want single-part InterpolationExpr", expr)
	}
}

func TestParse_TrailingTokenIsError(t *testing.T) {
	if _, err := Parse("1 + 2 3"); err == nil {
		t.Fatal("expected ParseError for trailing token")
	}
}

func TestParse_ObjectAndArrayLiterals(t *testing.T) {
	expr := mustParse(t, `{a: 1, "b": [1, 2, 3]}`)
	obj, ok := expr.(*ast.ObjectExpr)
	if !ok || len(obj.Entries) != 2 {
		t.Fatalf("root = %#v, want 2-entry ObjectExpr", expr)
	}
	if obj.Entries[0].KeyName != "a" || obj.Entries[1].KeyName != "b" {
		t.Fatalf("entries = %#v", obj.Entries)
	}
	arr, ok := obj.Entries[1].Value.(*ast.ArrayExpr)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("value = %#v, want 3-element ArrayExpr", obj.Entries[1].Value)
	}
}
