package evaluator

import "github.com/cwbudde/exprlang/internal/ast"

// VisitCall implements §4.4's two call shapes: an Identifier callee that is
// not bound in the Environment resolves against the FunctionRegistry, a
// Member callee dispatches to the receiver's method table. Any other callee
// (an Identifier bound in the Environment, a grouped or piped expression)
// is accepted as a supplemental generalisation when it evaluates to a
// Lambda, so that an expression producing a closure can be invoked
// immediately (an IIFE) without requiring it to be bound to a name first.
func (e *Evaluator) VisitCall(n *ast.CallExpr) (any, error) {
	if member, ok := n.Callee.(*ast.MemberExpr); ok {
		return e.visitMethodCall(member, n.Args)
	}
	if ident, ok := n.Callee.(*ast.IdentifierExpr); ok {
		if _, shadowed := e.Env.Get(ident.Name); !shadowed {
			return e.visitRegistryCall(ident.Name, n.Args)
		}
	}
	callee, err := e.Eval(n.Callee)
	if err != nil {
		return nil, err
	}
	lambda, ok := callee.(*LambdaValue)
	if !ok {
		return nil, e.errorf("%s is not callable", TypeName(callee))
	}
	args, err := e.evalArgs(n.Args)
	if err != nil {
		return nil, err
	}
	return e.CallLambda(lambda, args)
}

func (e *Evaluator) visitRegistryCall(name string, argExprs []ast.Expr) (Value, error) {
	fn, ok := e.Registry.Lookup(name)
	if !ok {
		return nil, e.errorf("unknown function %q", name)
	}
	args, err := e.evalArgs(argExprs)
	if err != nil {
		return nil, err
	}
	return fn(e, args)
}

// visitMethodCall evaluates the receiver, honours the `?.` optional
// shortcut, then dispatches to the fixed (kind, name) method table.
func (e *Evaluator) visitMethodCall(member *ast.MemberExpr, argExprs []ast.Expr) (Value, error) {
	receiver, err := e.Eval(member.Object)
	if err != nil {
		return nil, err
	}
	if member.Optional {
		if _, isNull := receiver.(NullValue); isNull {
			return Null, nil
		}
	}
	args, err := e.evalArgs(argExprs)
	if err != nil {
		return nil, err
	}
	switch v := receiver.(type) {
	case StringValue:
		fn, ok := stringMethods[member.Name]
		if !ok {
			return nil, e.errorf("string has no method %q", member.Name)
		}
		return fn(e, v, args)
	case *ArrayValue:
		fn, ok := arrayMethods[member.Name]
		if !ok {
			return nil, e.errorf("array has no method %q", member.Name)
		}
		return fn(e, v, args)
	case *ObjectValue:
		fn, ok := objectMethods[member.Name]
		if !ok {
			return nil, e.errorf("object has no method %q", member.Name)
		}
		return fn(e, v, args)
	case NullValue:
		return nil, e.errorf("cannot call method %q on null", member.Name)
	default:
		return nil, e.errorf("%s has no method %q", TypeName(receiver), member.Name)
	}
}

func (e *Evaluator) evalArgs(argExprs []ast.Expr) ([]Value, error) {
	args := make([]Value, 0, len(argExprs))
	for _, a := range argExprs {
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Null
}

func requireLambda(e *Evaluator, v Value, methodName string) (*LambdaValue, error) {
	l, ok := v.(*LambdaValue)
	if !ok {
		return nil, e.errorf("%q requires a lambda argument, got %s", methodName, TypeName(v))
	}
	return l, nil
}
