package canonjson_test

import (
	"math"
	"testing"

	"github.com/cwbudde/exprlang/internal/canonjson"
	"github.com/cwbudde/exprlang/internal/evaluator"
)

func TestEncodePrimitives(t *testing.T) {
	cases := []struct {
		v    evaluator.Value
		want string
	}{
		{evaluator.Null, "null"},
		{evaluator.BoolValue(true), "true"},
		{evaluator.BoolValue(false), "false"},
		{evaluator.IntegerValue(42), "42"},
		{evaluator.FloatValue(2.5), "2.5"},
		{evaluator.FloatValue(3.0), "3"},
		{evaluator.StringValue("hi\nthere"), `"hi\nthere"`},
	}
	for _, c := range cases {
		got := canonjson.Encode(c.v)
		if got != c.want {
			t.Errorf("Encode(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestEncodeObjectSortsKeys(t *testing.T) {
	obj := evaluator.NewObject()
	obj.Set("b", evaluator.IntegerValue(2))
	obj.Set("a", evaluator.IntegerValue(1))
	got := canonjson.Encode(obj)
	want := `{"a":1,"b":2}`
	if got != want {
		t.Fatalf("Encode(object) = %q, want %q", got, want)
	}
}

func TestEncodeArrayPreservesOrder(t *testing.T) {
	arr := evaluator.NewArray(evaluator.IntegerValue(3), evaluator.IntegerValue(1), evaluator.IntegerValue(2))
	got := canonjson.Encode(arr)
	want := "[3,1,2]"
	if got != want {
		t.Fatalf("Encode(array) = %q, want %q", got, want)
	}
}

func TestEncodeNaNAndInfinityBecomeNull(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := canonjson.Encode(evaluator.FloatValue(f))
		if got != "null" {
			t.Errorf("Encode(%v) = %q, want null", f, got)
		}
	}
}

func TestHashRoundTrip(t *testing.T) {
	checker := canonjson.NewIntegrityChecker(canonjson.SHA256)
	h1, err := checker.HashString("hello")
	if err != nil {
		t.Fatalf("HashString: %v", err)
	}
	h2, err := checker.HashString("hello")
	if err != nil {
		t.Fatalf("HashString: %v", err)
	}
	ok, err := canonjson.Verify(h1, h2)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching hashes, got %q vs %q", h1, h2)
	}
}

func TestHashJSONUsesCanonicalForm(t *testing.T) {
	checker := canonjson.NewIntegrityChecker(canonjson.SHA256)
	obj1 := evaluator.NewObject()
	obj1.Set("a", evaluator.IntegerValue(1))
	obj1.Set("b", evaluator.IntegerValue(2))
	obj2 := evaluator.NewObject()
	obj2.Set("b", evaluator.IntegerValue(2))
	obj2.Set("a", evaluator.IntegerValue(1))
	h1, err := checker.HashJSON(obj1)
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	h2, err := checker.HashJSON(obj2)
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected insertion-order-independent hash, got %q vs %q", h1, h2)
	}
}

func TestVerifyRejectsAlgorithmMismatch(t *testing.T) {
	sha := canonjson.NewIntegrityChecker(canonjson.SHA256)
	md5c := canonjson.NewIntegrityChecker(canonjson.MD5)
	h1, _ := sha.HashString("same input")
	h2, _ := md5c.HashString("same input")
	ok, err := canonjson.Verify(h1, h2)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected algorithm-mismatched hashes to not match")
	}
}

func TestParseAlgorithmAliases(t *testing.T) {
	for _, s := range []string{"sha256", "SHA-256", "Sha256"} {
		algo, err := canonjson.ParseAlgorithm(s)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", s, err)
		}
		if algo != canonjson.SHA256 {
			t.Errorf("ParseAlgorithm(%q) = %v, want sha256", s, algo)
		}
	}
}
