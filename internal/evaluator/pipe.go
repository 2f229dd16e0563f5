package evaluator

import "github.com/cwbudde/exprlang/internal/ast"

// VisitPipe implements `value | filter`: Filter is either a bare
// IdentifierExpr (filter name, no extra args) or a CallExpr naming the
// filter with additional arguments. The piped value is always prepended as
// the first argument.
func (e *Evaluator) VisitPipe(n *ast.PipeExpr) (any, error) {
	left, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	name, extraArgExprs, err := e.pipeFilterNameAndArgs(n.Filter)
	if err != nil {
		return nil, err
	}
	extraArgs, err := e.evalArgs(extraArgExprs)
	if err != nil {
		return nil, err
	}
	args := append([]Value{left}, extraArgs...)
	if fn, ok := e.Registry.LookupFilter(name); ok {
		return fn(e, args)
	}
	if fn, ok := e.Registry.Lookup(name); ok {
		return fn(e, args)
	}
	return nil, e.errorf("unknown filter %q", name)
}

// pipeFilterNameAndArgs extracts the filter name and extra argument
// expressions. The parser accepts any postfix expression as a pipe's
// Filter; anything other than an Identifier or an Identifier-call (for
// example `x | 1` or `x | a.b`) is rejected here with an EvalError.
func (e *Evaluator) pipeFilterNameAndArgs(filter ast.Expr) (string, []ast.Expr, error) {
	switch f := filter.(type) {
	case *ast.IdentifierExpr:
		return f.Name, nil, nil
	case *ast.CallExpr:
		ident, ok := f.Callee.(*ast.IdentifierExpr)
		if !ok {
			return "", nil, e.errorf("pipe filter must be a name or a name call")
		}
		return ident.Name, f.Args, nil
	default:
		return "", nil, e.errorf("pipe filter must be a name or a name call")
	}
}
