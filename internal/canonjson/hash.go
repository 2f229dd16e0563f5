package canonjson

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// Algorithm is a supported hash algorithm tag, normalised to its canonical
// lowercase form (see ParseAlgorithm).
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"
	MD5    Algorithm = "md5"
)

// ParseAlgorithm accepts any of the case-insensitive spellings §6 names
// (sha256/sha-256, sha384/sha-384, sha512/sha-512, md5) and returns the
// canonical Algorithm tag.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "sha256":
		return SHA256, nil
	case "sha384":
		return SHA384, nil
	case "sha512":
		return SHA512, nil
	case "md5":
		return MD5, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", s)
	}
}

func (a Algorithm) newHasher() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case MD5:
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", a)
	}
}

// IntegrityChecker computes and verifies content hashes over raw bytes,
// UTF-8 strings, and canonicalized Values, all rendered in the textual
// form "<algorithm>:<hex>".
type IntegrityChecker struct {
	Algorithm Algorithm
}

// NewIntegrityChecker builds a checker defaulting to the recommended
// sha-256 algorithm when algo is empty.
func NewIntegrityChecker(algo Algorithm) *IntegrityChecker {
	if algo == "" {
		algo = SHA256
	}
	return &IntegrityChecker{Algorithm: algo}
}

func (c *IntegrityChecker) sum(data []byte) (string, error) {
	h, err := c.Algorithm.newHasher()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return string(c.Algorithm) + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes hashes raw bytes directly.
func (c *IntegrityChecker) HashBytes(data []byte) (string, error) {
	return c.sum(data)
}

// HashString hashes s after UTF-8 encoding (a no-op for Go strings, which
// are already UTF-8 byte sequences).
func (c *IntegrityChecker) HashString(s string) (string, error) {
	return c.sum([]byte(s))
}

// HashJSON canonicalizes v and hashes the resulting text, making it the
// composition IntegrityChecker.HashString(Encode(v)).
func (c *IntegrityChecker) HashJSON(v evaluator.Value) (string, error) {
	return c.sum([]byte(Encode(v)))
}

// Verify parses both textual hash forms and reports whether they match. A
// mismatched algorithm tag or differing byte length is a non-match without
// ever touching subtle.ConstantTimeCompare; equal-length digest bytes are
// compared in constant time so verification time does not leak how many
// leading bytes matched.
func Verify(want, got string) (bool, error) {
	wantAlgo, wantHex, err := splitHashForm(want)
	if err != nil {
		return false, err
	}
	gotAlgo, gotHex, err := splitHashForm(got)
	if err != nil {
		return false, err
	}
	if wantAlgo != gotAlgo {
		return false, nil
	}
	wantBytes, err := hex.DecodeString(wantHex)
	if err != nil {
		return false, fmt.Errorf("invalid hex in hash %q", want)
	}
	gotBytes, err := hex.DecodeString(gotHex)
	if err != nil {
		return false, fmt.Errorf("invalid hex in hash %q", got)
	}
	if len(wantBytes) != len(gotBytes) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(wantBytes, gotBytes) == 1, nil
}

// splitHashForm parses "<algorithm>:<hex>", accepting the algorithm name
// case-insensitively and requiring the hex half to be strictly lowercase.
func splitHashForm(s string) (Algorithm, string, error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return "", "", fmt.Errorf("malformed hash form %q", s)
	}
	algo, err := ParseAlgorithm(s[:idx])
	if err != nil {
		return "", "", err
	}
	hexPart := s[idx+1:]
	if hexPart != strings.ToLower(hexPart) {
		return "", "", fmt.Errorf("hash hex must be lowercase: %q", s)
	}
	return algo, hexPart, nil
}
