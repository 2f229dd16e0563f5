package errors

import (
	"fmt"
	"strings"
)

// FormatTrace renders a lambda call-chain trace (outermost first, as stored
// on EvalError.Trace) the way a CLI or test failure message should show it:
// one "in <frame>" line per entry, innermost last.
func FormatTrace(trace []string) string {
	if len(trace) == 0 {
		return ""
	}
	var b strings.Builder
	for _, frame := range trace {
		b.WriteString("\n  in ")
		b.WriteString(frame)
	}
	return b.String()
}

// Detailed renders an EvalError's message together with its source position
// and call trace, for diagnostics contexts (CLI, test failures) that want
// more than Error()'s one-line contract form.
func (e *EvalError) Detailed() string {
	msg := e.Error()
	if e.Line != 0 || e.Column != 0 {
		msg = fmt.Sprintf("%s (at %d:%d)", msg, e.Line, e.Column)
	}
	return msg + FormatTrace(e.Trace)
}
