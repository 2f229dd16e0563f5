package evaluator

import (
	"fmt"
	"strings"

	"github.com/cwbudde/exprlang/internal/ast"
	xerrors "github.com/cwbudde/exprlang/internal/errors"
)

// Evaluator walks an AST against an Environment and a shared Registry,
// implementing ast.Visitor. A fresh Evaluator (sharing the Registry but
// not the Environment) is created for every lambda invocation's body.
type Evaluator struct {
	Env      *Environment
	Registry *Registry
	pos      ast.Position
}

// NewEvaluator constructs an Evaluator over env and registry.
func NewEvaluator(env *Environment, registry *Registry) *Evaluator {
	return &Evaluator{Env: env, Registry: registry}
}

// Eval computes expr's Value. This is the "safe" form of §4.4's contract:
// Go's (Value, error) return already is the Ok(Value) | Err(EvalError)
// tagged result, so no separate wrapper type is introduced.
func (e *Evaluator) Eval(expr ast.Expr) (Value, error) {
	e.pos = expr.Pos()
	result, err := expr.Accept(e)
	if err != nil {
		return nil, err
	}
	v, _ := result.(Value)
	return v, nil
}

// Evaluate is the package-level entry point: parse result in, Value out.
func Evaluate(expr ast.Expr, env *Environment, registry *Registry) (Value, error) {
	return NewEvaluator(env, registry).Eval(expr)
}

// EvaluateOrPanic is the "evaluateOrThrow" variant of §4.4's contract: it
// propagates failure by panicking with the EvalError instead of returning
// it, for callers in a context that already unwinds via panic/recover.
func EvaluateOrPanic(expr ast.Expr, env *Environment, registry *Registry) Value {
	v, err := Evaluate(expr, env, registry)
	if err != nil {
		panic(err)
	}
	return v
}

func (e *Evaluator) errorf(format string, args ...any) error {
	return xerrors.NewEvalError(e.pos.Line, e.pos.Column, format, args...)
}

// NewError implements BuiltinContext for built-in functions that want to
// report a failure at the current call-site position.
func (e *Evaluator) NewError(format string, args ...any) error {
	return e.errorf(format, args...)
}

// CallLambda implements BuiltinContext and is also used internally by
// VisitCall for direct lambda invocation: it binds params positionally
// (extra args ignored, missing become null) in a fresh child scope of the
// closure's captured environment, then evaluates the body there. An error
// unwinding out of the body gets this call's frame pushed onto its trace,
// so an error raised deep inside nested lambda calls (map inside filter
// inside reduce, say) carries the whole chain by the time it reaches the
// top-level caller.
func (e *Evaluator) CallLambda(fn *LambdaValue, args []Value) (Value, error) {
	child := NewEnclosedEnvironment(fn.Closure)
	for i, name := range fn.Params {
		if i < len(args) {
			child.Define(name, args[i])
		} else {
			child.Define(name, Null)
		}
	}
	sub := NewEvaluator(child, e.Registry)
	v, err := sub.Eval(fn.Body)
	if err != nil {
		if evalErr, ok := err.(*xerrors.EvalError); ok {
			return nil, evalErr.WithFrame(lambdaFrame(fn))
		}
		return nil, err
	}
	return v, nil
}

func lambdaFrame(fn *LambdaValue) string {
	pos := fn.Body.Pos()
	return fmt.Sprintf("lambda(%s) @%d:%d", strings.Join(fn.Params, ", "), pos.Line, pos.Column)
}

func (e *Evaluator) VisitLiteral(n *ast.LiteralExpr) (any, error) {
	switch v := n.Value.(type) {
	case nil:
		return Null, nil
	case bool:
		return BoolValue(v), nil
	case int64:
		return IntegerValue(v), nil
	case float64:
		return FloatValue(v), nil
	case string:
		return StringValue(v), nil
	default:
		return nil, e.errorf("unsupported literal value %#v", n.Value)
	}
}

func (e *Evaluator) VisitIdentifier(n *ast.IdentifierExpr) (any, error) {
	if v, ok := e.Env.Get(n.Name); ok {
		return v, nil
	}
	return nil, e.errorf("undefined identifier %q", n.Name)
}

func (e *Evaluator) VisitUnary(n *ast.UnaryExpr) (any, error) {
	operand, err := e.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		return BoolValue(!Truthy(operand)), nil
	case "-":
		switch v := operand.(type) {
		case IntegerValue:
			return IntegerValue(-v), nil
		case FloatValue:
			return FloatValue(-v), nil
		default:
			return nil, e.errorf("unary '-' requires a number, got %s", TypeName(operand))
		}
	}
	return nil, e.errorf("unknown unary operator %q", n.Op)
}

func (e *Evaluator) VisitLogical(n *ast.LogicalExpr) (any, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "and":
		if !Truthy(left) {
			return BoolValue(false), nil
		}
		right, err := e.Eval(n.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(Truthy(right)), nil
	case "or":
		if Truthy(left) {
			return BoolValue(true), nil
		}
		right, err := e.Eval(n.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(Truthy(right)), nil
	}
	return nil, e.errorf("unknown logical operator %q", n.Op)
}

func (e *Evaluator) VisitGrouping(n *ast.GroupingExpr) (any, error) {
	return e.Eval(n.Inner)
}

func (e *Evaluator) VisitConditional(n *ast.ConditionalExpr) (any, error) {
	cond, err := e.Eval(n.Cond)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return e.Eval(n.Then)
	}
	return e.Eval(n.Otherwise)
}

func (e *Evaluator) VisitArray(n *ast.ArrayExpr) (any, error) {
	elems := make([]Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, err := e.Eval(el)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return &ArrayValue{Elements: elems}, nil
}

func (e *Evaluator) VisitObject(n *ast.ObjectExpr) (any, error) {
	obj := NewObject()
	for _, entry := range n.Entries {
		v, err := e.Eval(entry.Value)
		if err != nil {
			return nil, err
		}
		obj.Set(entry.KeyName, v)
	}
	return obj, nil
}

func (e *Evaluator) VisitInterpolation(n *ast.InterpolationExpr) (any, error) {
	var out string
	for _, part := range n.Parts {
		v, err := e.Eval(part)
		if err != nil {
			return nil, err
		}
		out += v.Display()
	}
	return StringValue(out), nil
}

func (e *Evaluator) VisitLambda(n *ast.LambdaExpr) (any, error) {
	return &LambdaValue{Params: n.Params, Body: n.Body, Closure: e.Env}, nil
}
