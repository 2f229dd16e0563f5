package builtins

import "github.com/cwbudde/exprlang/internal/evaluator"

// NewStandardRegistry builds a Registry with every built-in family from
// spec.md §7 registered: Strings, Math, Arrays, Objects, Types, Dates,
// Utility, the JSON-text patch pair, and the canonicalizer/integrity
// bridge functions.
func NewStandardRegistry() *evaluator.Registry {
	r := evaluator.NewRegistry()
	registerStrings(r)
	registerMath(r)
	registerArrays(r)
	registerObjects(r)
	registerTypes(r)
	registerDates(r)
	registerUtility(r)
	registerJSONPatch(r)
	registerSupplement(r)
	return r
}

// RegisterStandardFilters seeds the pipe-filter namespace with aliases for
// the builtins most naturally used as filters (`value | upper`, rather
// than `upper(value)`). Any other registry function remains reachable from
// a pipe through VisitPipe's fallback to the FunctionRegistry, so this list
// is a convenience, not a completeness requirement.
func RegisterStandardFilters(r *evaluator.Registry) {
	for _, name := range []string{
		"upper", "lower", "trim", "trimStart", "trimEnd",
		"toNumber", "toString", "toBool", "toArray",
		"json", "stringify",
	} {
		if fn, ok := r.Lookup(name); ok {
			r.RegisterFilter(name, fn)
		}
	}
}
