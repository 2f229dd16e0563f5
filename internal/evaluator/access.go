package evaluator

import "github.com/cwbudde/exprlang/internal/ast"

// VisitMember implements §4.4's member access: `object.name` resolves a
// reserved property on Array/String (length/first/last/isEmpty/isNotEmpty)
// or a key lookup on Object; `object?.name` additionally short-circuits to
// Null without evaluating further when the receiver is Null.
func (e *Evaluator) VisitMember(n *ast.MemberExpr) (any, error) {
	obj, err := e.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	if n.Optional {
		if _, isNull := obj.(NullValue); isNull {
			return Null, nil
		}
	}
	switch v := obj.(type) {
	case *ObjectValue:
		if val, ok := v.Get(n.Name); ok {
			return val, nil
		}
		return Null, nil
	case *ArrayValue:
		if val, ok := reservedSequenceProperty(n.Name, len(v.Elements), func(i int) Value { return v.Elements[i] }); ok {
			return val, nil
		}
		return nil, e.errorf("array has no member %q", n.Name)
	case StringValue:
		if val, ok := reservedSequenceProperty(n.Name, len([]rune(v)), func(i int) Value { return StringValue(string([]rune(v)[i])) }); ok {
			return val, nil
		}
		return nil, e.errorf("string has no member %q", n.Name)
	case NullValue:
		return nil, e.errorf("cannot read member %q of null", n.Name)
	default:
		return nil, e.errorf("%s has no member %q", TypeName(obj), n.Name)
	}
}

// reservedSequenceProperty implements the length/first/last/isEmpty/
// isNotEmpty property set shared by Array and String receivers.
func reservedSequenceProperty(name string, length int, at func(int) Value) (Value, bool) {
	switch name {
	case "length":
		return IntegerValue(length), true
	case "first":
		if length == 0 {
			return Null, true
		}
		return at(0), true
	case "last":
		if length == 0 {
			return Null, true
		}
		return at(length - 1), true
	case "isEmpty":
		return BoolValue(length == 0), true
	case "isNotEmpty":
		return BoolValue(length != 0), true
	default:
		return nil, false
	}
}

// VisitIndex implements `object[index]`: Array indexing by Integer with
// bounds checking, String indexing by Integer (rune-wise) with bounds
// checking, Object indexing by String key (missing key yields Null).
func (e *Evaluator) VisitIndex(n *ast.IndexExpr) (any, error) {
	obj, err := e.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case *ArrayValue:
		i, ok := idx.(IntegerValue)
		if !ok {
			return nil, e.errorf("array index must be an integer, got %s", TypeName(idx))
		}
		if int(i) < 0 || int(i) >= len(v.Elements) {
			return nil, e.errorf("array index %d out of range (length %d)", int64(i), len(v.Elements))
		}
		return v.Elements[i], nil
	case StringValue:
		i, ok := idx.(IntegerValue)
		if !ok {
			return nil, e.errorf("string index must be an integer, got %s", TypeName(idx))
		}
		runes := []rune(v)
		if int(i) < 0 || int(i) >= len(runes) {
			return nil, e.errorf("string index %d out of range (length %d)", int64(i), len(runes))
		}
		return StringValue(string(runes[i])), nil
	case *ObjectValue:
		// §4.4: indexing an Object accepts any Value as the key and returns
		// the stored value or null — a non-string index simply can never
		// have a stored entry, so it falls straight through to null rather
		// than erroring the way an out-of-range Array/String index does.
		key, ok := idx.(StringValue)
		if !ok {
			return Null, nil
		}
		if val, ok := v.Get(string(key)); ok {
			return val, nil
		}
		return Null, nil
	default:
		return nil, e.errorf("%s is not indexable", TypeName(obj))
	}
}
