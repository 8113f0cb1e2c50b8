package sclisp

import (
	"strconv"
	"strings"
)

// budgetWriter accumulates repr output up to a fixed byte budget,
// silently discarding anything beyond it (§4.6's "known limitation").
type budgetWriter struct {
	b   strings.Builder
	max int
}

func (w *budgetWriter) WriteString(s string) {
	remaining := w.max - w.b.Len()
	if remaining <= 0 {
		return
	}
	if len(s) > remaining {
		s = s[:remaining]
	}
	w.b.WriteString(s)
}

// Repr renders o to its canonical human-readable string, used both
// for display and as the string-coercion fallback elsewhere in the
// bridge and comparison builtins.
func Repr(o *Object, cfg *Config) string {
	max := 1023
	if cfg != nil {
		max = cfg.GetInt("printer.output_max")
	}
	w := &budgetWriter{max: max}
	writeRepr(w, o)
	return w.b.String()
}

func writeRepr(w *budgetWriter, o *Object) {
	if o == nil {
		w.WriteString("nil")
		return
	}
	switch o.tag {
	case TagInteger:
		w.WriteString(strconv.FormatInt(o.i, 10))
	case TagReal:
		w.WriteString(formatReal(o.r))
	case TagString:
		w.WriteString(`"`)
		w.WriteString(o.s)
		w.WriteString(`"`)
	case TagSymbol:
		w.WriteString(o.s)
	case TagFunction:
		w.WriteString("<func>")
	case TagBuiltin:
		w.WriteString("<builtin>")
	case TagCell:
		writeCell(w, o)
	default:
		w.WriteString("nil")
	}
}

// formatReal renders a fixed-point value with six fractional digits,
// then trims trailing zeros without stripping the digit immediately
// right of the dot — so 3.0 stays "3.0" and 3.14000 becomes "3.14".
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	end := len(s)
	for end > dot+2 && s[end-1] == '0' {
		end--
	}
	return s[:end]
}

func writeCell(w *budgetWriter, o *Object) {
	w.WriteString("(")
	first := true
	cur := o
	for {
		if !first {
			w.WriteString(" ")
		}
		first = false
		writeRepr(w, cur.car)
		switch {
		case cur.cdr == nil:
			w.WriteString(")")
			return
		case cur.cdr.IsCell():
			cur = cur.cdr
		default:
			w.WriteString(" . ")
			writeRepr(w, cur.cdr)
			w.WriteString(")")
			return
		}
	}
}
