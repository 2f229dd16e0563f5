package evaluator

import (
	"math"
	"strconv"
)

// trimFloat renders f via the shortest decimal that round-trips, per the
// evaluator's stringification contract (distinct from the canonicalizer's
// stricter byte-exact number formatting).
func trimFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Truthy implements §4.4's truthiness contract: null and false are falsy,
// numbers are falsy iff zero, strings/arrays/objects are falsy iff empty,
// everything else is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case NullValue:
		return false
	case BoolValue:
		return bool(t)
	case IntegerValue:
		return t != 0
	case FloatValue:
		return t != 0
	case StringValue:
		return len(t) != 0
	case *ArrayValue:
		return len(t.Elements) != 0
	case *ObjectValue:
		return t.Len() != 0
	default:
		return true
	}
}

// Equal implements §4.4's equality contract for `==`/`!=`: nulls equal only
// nulls, numbers compare by numeric value across Integer/Float, everything
// else by deep structural equality.
func Equal(a, b Value) bool {
	_, aNull := a.(NullValue)
	_, bNull := b.(NullValue)
	if aNull || bNull {
		return aNull && bNull
	}
	an, aNum := a.(Numeric)
	bn, bNum := b.(Numeric)
	if aNum && bNum {
		return an.Float() == bn.Float()
	}
	switch av := a.(type) {
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *ObjectValue:
		bv, ok := b.(*ObjectValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bval, ok := bv.Get(k)
			if !ok || !Equal(av.values[k], bval) {
				return false
			}
		}
		return true
	case DateTimeValue:
		bv, ok := b.(DateTimeValue)
		return ok && av.Time.Equal(bv.Time)
	case *LambdaValue:
		bv, ok := b.(*LambdaValue)
		return ok && av == bv
	case FunctionValue:
		bv, ok := b.(FunctionValue)
		return ok && av == bv
	default:
		return false
	}
}

// Compare implements §4.4's ordering contract for `<`/`<=`/`>`/`>=`:
// numbers-to-numbers, strings-to-strings, instants-to-instants only.
// Returns (cmp, true) with cmp negative/zero/positive, or (0, false) when
// the operands are not order-comparable.
func Compare(a, b Value) (int, bool) {
	an, aNum := a.(Numeric)
	bn, bNum := b.(Numeric)
	if aNum && bNum {
		af, bf := an.Float(), bn.Float()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if as, ok := a.(StringValue); ok {
		if bs, ok := b.(StringValue); ok {
			switch {
			case as < bs:
				return -1, true
			case as > bs:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	if ad, ok := a.(DateTimeValue); ok {
		if bd, ok := b.(DateTimeValue); ok {
			switch {
			case ad.Time.Before(bd.Time):
				return -1, true
			case ad.Time.After(bd.Time):
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	return 0, false
}

// TypeName returns the Types-family `type()` builtin's name for v's kind.
func TypeName(v Value) string {
	switch v.(type) {
	case NullValue:
		return "null"
	case BoolValue:
		return "bool"
	case IntegerValue, FloatValue:
		return "number"
	case StringValue:
		return "string"
	case *ArrayValue:
		return "array"
	case *ObjectValue:
		return "object"
	case DateTimeValue:
		return "datetime"
	case *LambdaValue:
		return "lambda"
	case FunctionValue:
		return "function"
	default:
		return "unknown"
	}
}
