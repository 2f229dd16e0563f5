package canonjson_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/exprlang/internal/canonjson"
	"github.com/cwbudde/exprlang/internal/evaluator"
)

// TestEncodeSnapshot pins the byte-exact canonical form of a representative
// value shape (nested object/array, mixed number formatting, an escaped
// string) against a go-snaps snapshot file, the way the teacher pins
// interpreter output with go-snaps rather than hand-writing one literal per
// case. No snapshot file is committed; go-snaps writes it on the first run.
func TestEncodeSnapshot(t *testing.T) {
	obj := evaluator.NewObject()
	obj.Set("name", evaluator.StringValue("Bob\t\"the builder\""))
	obj.Set("age", evaluator.IntegerValue(41))
	obj.Set("score", evaluator.FloatValue(98.6))
	obj.Set("tags", evaluator.NewArray(
		evaluator.StringValue("admin"),
		evaluator.Null,
		evaluator.BoolValue(true),
	))
	nested := evaluator.NewObject()
	nested.Set("z", evaluator.IntegerValue(1))
	nested.Set("a", evaluator.IntegerValue(2))
	obj.Set("nested", nested)

	snaps.MatchSnapshot(t, "representative_object", canonjson.Encode(obj))
}

// TestHashSnapshot pins the digest form (not the digest value itself, which
// would make the snapshot depend on the hash algorithm's exact bytes, but
// the "<algo>:<hex-length>" shape) across all four supported algorithms.
func TestHashSnapshot(t *testing.T) {
	value := evaluator.NewArray(evaluator.IntegerValue(1), evaluator.IntegerValue(2), evaluator.IntegerValue(3))
	for _, algo := range []canonjson.Algorithm{canonjson.SHA256, canonjson.SHA384, canonjson.SHA512, canonjson.MD5} {
		checker := canonjson.NewIntegrityChecker(algo)
		digest, err := checker.HashJSON(value)
		if err != nil {
			t.Fatalf("HashJSON(%v): %v", algo, err)
		}
		prefix, hexPart, ok := splitDigest(digest)
		if !ok {
			t.Fatalf("digest %q has no algo:hex separator", digest)
		}
		snaps.MatchSnapshot(t, string(algo), prefix, len(hexPart))
	}
}

func splitDigest(s string) (prefix, hexPart string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
