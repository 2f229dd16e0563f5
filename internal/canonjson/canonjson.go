// Package canonjson implements the byte-stable canonical JSON serialization
// used to make hashed payloads reproducible: objects with sorted keys,
// arrays in insertion order, no incidental whitespace, and fixed number/
// escape rules. It is intentionally hand-rolled rather than built on a
// general-purpose JSON encoder, since Go's encoding/json does not expose
// the specific float-vs-integer and key-ordering rules this format needs.
package canonjson

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// Encode renders v as canonical JSON text. It is total: any Value shape
// that is not itself JSON-representable (Lambda, Function, DateTime) falls
// back to quoting its Display() text rather than failing.
func Encode(v evaluator.Value) string {
	var b strings.Builder
	encode(&b, v)
	return b.String()
}

func encode(b *strings.Builder, v evaluator.Value) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case evaluator.NullValue:
		b.WriteString("null")
	case evaluator.BoolValue:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case evaluator.IntegerValue:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case evaluator.FloatValue:
		encodeFloat(b, float64(val))
	case evaluator.StringValue:
		encodeString(b, string(val))
	case *evaluator.ArrayValue:
		encodeArray(b, val)
	case *evaluator.ObjectValue:
		encodeObject(b, val)
	default:
		encodeString(b, v.Display())
	}
}

// encodeFloat implements §4.6: NaN/±Inf become null, mathematically integer
// floats serialise without a decimal point, everything else uses the
// host's shortest round-trip decimal.
func encodeFloat(b *strings.Builder, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		b.WriteString("null")
		return
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e18 {
		b.WriteString(strconv.FormatInt(int64(f), 10))
		return
	}
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

// encodeString implements §4.6's escape table: `"`, `\`, control
// characters below 0x20 via \uXXXX except the named escapes \b \f \n \r \t.
func encodeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func encodeArray(b *strings.Builder, arr *evaluator.ArrayValue) {
	b.WriteByte('[')
	for i, el := range arr.Elements {
		if i > 0 {
			b.WriteByte(',')
		}
		encode(b, el)
	}
	b.WriteByte(']')
}

// encodeObject implements §4.6's key ordering: ascending Unicode
// code-point order, independent of the Value's own insertion order.
func encodeObject(b *strings.Builder, obj *evaluator.ObjectValue) {
	keys := append([]string(nil), obj.Keys()...)
	sort.Strings(keys)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		encodeString(b, k)
		b.WriteByte(':')
		v, _ := obj.Get(k)
		encode(b, v)
	}
	b.WriteByte('}')
}
