package builtins

import (
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/exprlang/internal/evaluator"
)

// registerDates wires spec.md §7's Dates family: now, today, parseDate,
// formatDate (tokens yyyy MM dd HH mm ss), addDays, addMonths, addYears,
// diffDays, year, month, day, hour, minute, second, dayOfWeek.
func registerDates(r *evaluator.Registry) {
	r.Register("now", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return evaluator.DateTimeValue{Time: time.Now().UTC()}, nil
	})
	r.Register("today", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		now := time.Now().UTC()
		return evaluator.DateTimeValue{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}, nil
	})
	r.Register("parseDate", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := asString(at(args, 0))
		if !ok {
			return nil, ctx.NewError("parseDate requires a string argument")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02", s)
		}
		if err != nil {
			return nil, ctx.NewError("parseDate: cannot parse %q", s)
		}
		return evaluator.DateTimeValue{Time: t.UTC()}, nil
	})
	r.Register("formatDate", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		dt, ok := asDateTime(at(args, 0))
		if !ok {
			return nil, ctx.NewError("formatDate requires a datetime argument")
		}
		layout, ok := asString(at(args, 1))
		if !ok {
			layout = "yyyy-MM-dd"
		}
		return evaluator.StringValue(formatDateTime(dt, layout)), nil
	})
	r.Register("addDays", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return addTo(ctx, args, func(t time.Time, n int64) time.Time { return t.AddDate(0, 0, int(n)) })
	})
	r.Register("addMonths", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return addTo(ctx, args, func(t time.Time, n int64) time.Time { return t.AddDate(0, int(n), 0) })
	})
	r.Register("addYears", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		return addTo(ctx, args, func(t time.Time, n int64) time.Time { return t.AddDate(int(n), 0, 0) })
	})
	r.Register("diffDays", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		a, ok1 := asDateTime(at(args, 0))
		b, ok2 := asDateTime(at(args, 1))
		if !ok1 || !ok2 {
			return nil, ctx.NewError("diffDays requires two datetime arguments")
		}
		return evaluator.IntegerValue(int64(a.Time.Sub(b.Time).Hours() / 24)), nil
	})
	field := map[string]func(time.Time) int{
		"year":   func(t time.Time) int { return t.Year() },
		"month":  func(t time.Time) int { return int(t.Month()) },
		"day":    func(t time.Time) int { return t.Day() },
		"hour":   func(t time.Time) int { return t.Hour() },
		"minute": func(t time.Time) int { return t.Minute() },
		"second": func(t time.Time) int { return t.Second() },
	}
	for name, fn := range field {
		fn := fn
		name := name
		r.Register(name, func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
			dt, ok := asDateTime(at(args, 0))
			if !ok {
				return nil, ctx.NewError("%s requires a datetime argument", name)
			}
			return evaluator.IntegerValue(fn(dt.Time)), nil
		})
	}
	r.Register("dayOfWeek", func(ctx evaluator.BuiltinContext, args []evaluator.Value) (evaluator.Value, error) {
		dt, ok := asDateTime(at(args, 0))
		if !ok {
			return nil, ctx.NewError("dayOfWeek requires a datetime argument")
		}
		return evaluator.IntegerValue(int64(dt.Time.Weekday())), nil
	})
}

func asDateTime(v evaluator.Value) (evaluator.DateTimeValue, bool) {
	dt, ok := v.(evaluator.DateTimeValue)
	return dt, ok
}

func addTo(ctx evaluator.BuiltinContext, args []evaluator.Value, fn func(time.Time, int64) time.Time) (evaluator.Value, error) {
	dt, ok := asDateTime(at(args, 0))
	if !ok {
		return nil, ctx.NewError("requires a datetime argument")
	}
	n, ok := asInt(at(args, 1))
	if !ok {
		return nil, ctx.NewError("requires an integer argument")
	}
	return evaluator.DateTimeValue{Time: fn(dt.Time, n)}, nil
}

// formatDateTime implements the token substitution named in §7: yyyy MM dd
// HH mm ss, each replaced with its zero-padded numeric field.
func formatDateTime(dt evaluator.DateTimeValue, layout string) string {
	t := dt.Time
	replacements := []struct {
		token string
		value string
	}{
		{"yyyy", pad4(t.Year())},
		{"MM", pad2(int(t.Month()))},
		{"dd", pad2(t.Day())},
		{"HH", pad2(t.Hour())},
		{"mm", pad2(t.Minute())},
		{"ss", pad2(t.Second())},
	}
	out := layout
	for _, r := range replacements {
		out = strings.ReplaceAll(out, r.token, r.value)
	}
	return out
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func pad4(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
