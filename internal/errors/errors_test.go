package errors

import "testing"

func TestLexErrorFormat(t *testing.T) {
	err := NewLexError(3, 7, "unterminated string literal")
	want := "LexerException at 3:7: unterminated string literal"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorFormat(t *testing.T) {
	err := NewParseError(1, 12, "expected ')' after arguments")
	want := "ParserException at 1:12: expected ')' after arguments"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEvalErrorFormat(t *testing.T) {
	// Error() never includes position, regardless of whether one was
	// recorded: the contract's textual form is "EvaluationException: <msg>".
	tests := []struct {
		name string
		err  *EvalError
		want string
	}{
		{"with position", NewEvalError(2, 5, "division by zero"), "EvaluationException: division by zero"},
		{"without position", NewEvalError(0, 0, "unknown function %q", "frob"), `EvaluationException: unknown function "frob"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalErrorDetailedIncludesPosition(t *testing.T) {
	err := NewEvalError(2, 5, "division by zero")
	want := "EvaluationException: division by zero (at 2:5)"
	if got := err.Detailed(); got != want {
		t.Errorf("Detailed() = %q, want %q", got, want)
	}
}

func TestEvalErrorWithFrame(t *testing.T) {
	err := NewEvalError(4, 1, "boom")
	err = err.WithFrame("lambda @4:1").WithFrame("map callback")
	if len(err.Trace) != 2 || err.Trace[0] != "map callback" || err.Trace[1] != "lambda @4:1" {
		t.Fatalf("unexpected trace: %#v", err.Trace)
	}
	want := "EvaluationException: boom (at 4:1)\n  in map callback\n  in lambda @4:1"
	if got := err.Detailed(); got != want {
		t.Fatalf("Detailed() = %q, want %q", got, want)
	}
}
