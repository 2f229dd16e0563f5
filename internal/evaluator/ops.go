package evaluator

import (
	"math"

	"github.com/cwbudde/exprlang/internal/ast"
)

func (e *Evaluator) VisitBinary(n *ast.BinaryExpr) (any, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+":
		return e.add(left, right)
	case "-":
		return e.arith(left, right, func(a, b float64) float64 { return a - b })
	case "*":
		return e.arith(left, right, func(a, b float64) float64 { return a * b })
	case "/":
		return e.divide(left, right)
	case "%":
		return e.modulo(left, right)
	case "**":
		return e.power(left, right)
	case "==":
		return BoolValue(Equal(left, right)), nil
	case "!=":
		return BoolValue(!Equal(left, right)), nil
	case "<", "<=", ">", ">=":
		return e.compareOp(n.Op, left, right)
	}
	return nil, e.errorf("unknown binary operator %q", n.Op)
}

// add implements §4.4: number+number adds, String on either side
// concatenates (null coerced to ""), Array+Array concatenates, else fails.
func (e *Evaluator) add(left, right Value) (Value, error) {
	_, leftStr := left.(StringValue)
	_, rightStr := right.(StringValue)
	if leftStr || rightStr {
		return StringValue(stringifyOperand(left) + stringifyOperand(right)), nil
	}
	if la, ok := left.(*ArrayValue); ok {
		if ra, ok := right.(*ArrayValue); ok {
			out := make([]Value, 0, len(la.Elements)+len(ra.Elements))
			out = append(out, la.Elements...)
			out = append(out, ra.Elements...)
			return &ArrayValue{Elements: out}, nil
		}
	}
	ln, lok := left.(Numeric)
	rn, rok := right.(Numeric)
	if lok && rok {
		return numericResult(left, right, ln.Float()+rn.Float()), nil
	}
	return nil, e.errorf("'+' requires two numbers, two strings, or two arrays, got %s and %s", TypeName(left), TypeName(right))
}

func stringifyOperand(v Value) string {
	if _, ok := v.(NullValue); ok {
		return ""
	}
	return v.Display()
}

func (e *Evaluator) arith(left, right Value, fn func(a, b float64) float64) (Value, error) {
	ln, lok := left.(Numeric)
	rn, rok := right.(Numeric)
	if !lok || !rok {
		return nil, e.errorf("arithmetic operator requires two numbers, got %s and %s", TypeName(left), TypeName(right))
	}
	return numericResult(left, right, fn(ln.Float(), rn.Float())), nil
}

func (e *Evaluator) divide(left, right Value) (Value, error) {
	ln, lok := left.(Numeric)
	rn, rok := right.(Numeric)
	if !lok || !rok {
		return nil, e.errorf("'/' requires two numbers, got %s and %s", TypeName(left), TypeName(right))
	}
	if rn.Float() == 0 {
		return nil, e.errorf("division by zero")
	}
	return numericResult(left, right, ln.Float()/rn.Float()), nil
}

func (e *Evaluator) modulo(left, right Value) (Value, error) {
	ln, lok := left.(Numeric)
	rn, rok := right.(Numeric)
	if !lok || !rok {
		return nil, e.errorf("'%%' requires two numbers, got %s and %s", TypeName(left), TypeName(right))
	}
	if rn.Float() == 0 {
		return nil, e.errorf("modulo by zero")
	}
	return numericResult(left, right, math.Mod(ln.Float(), rn.Float())), nil
}

// power implements §4.4/§9: non-negative integer exponents use repeated
// multiplication (keeping Integer results Integer when both operands are
// Integer); any other exponent uses the host's math.Pow.
func (e *Evaluator) power(left, right Value) (Value, error) {
	ln, lok := left.(Numeric)
	rn, rok := right.(Numeric)
	if !lok || !rok {
		return nil, e.errorf("'**' requires two numbers, got %s and %s", TypeName(left), TypeName(right))
	}
	li, liok := left.(IntegerValue)
	ri, riok := right.(IntegerValue)
	if liok && riok && ri >= 0 {
		result := int64(1)
		base := int64(li)
		for i := int64(0); i < int64(ri); i++ {
			result *= base
		}
		return IntegerValue(result), nil
	}
	return FloatValue(math.Pow(ln.Float(), rn.Float())), nil
}

func (e *Evaluator) compareOp(op string, left, right Value) (Value, error) {
	cmp, ok := Compare(left, right)
	if !ok {
		return nil, e.errorf("%q requires two numbers, two strings, or two datetimes, got %s and %s", op, TypeName(left), TypeName(right))
	}
	switch op {
	case "<":
		return BoolValue(cmp < 0), nil
	case "<=":
		return BoolValue(cmp <= 0), nil
	case ">":
		return BoolValue(cmp > 0), nil
	case ">=":
		return BoolValue(cmp >= 0), nil
	}
	return nil, e.errorf("unknown comparison operator %q", op)
}

// numericResult narrows result back to Integer when both operands were
// Integer and the result is lossless, otherwise returns Float — the
// "distinguished internally, promoted on arithmetic" rule from §3.
func numericResult(left, right Value, result float64) Value {
	_, li := left.(IntegerValue)
	_, ri := right.(IntegerValue)
	if li && ri && result == math.Trunc(result) && !math.IsInf(result, 0) {
		return IntegerValue(int64(result))
	}
	return FloatValue(result)
}
