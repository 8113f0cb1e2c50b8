package sclisp

// evalContext is the state threaded through one evaluation: the heap
// used for every construction and release, the live scope chain, and
// the config governing implementation-defined knobs. A fresh
// evalContext is not created per call — it is the same value for the
// whole life of an Interpreter — but is kept separate from Interpreter
// so builtins (which only ever see *evalContext) can't reach the
// embedder-facing bits of Interpreter (last-result, last-error).
type evalContext struct {
	h   *heap
	sc  *scope
	cfg *Config
	cb  *Callbacks

	// statics are the refcounting-exempt singletons installed at
	// init (§3 "Static objects"): canonical true/false and the
	// eight type-name strings typeof returns.
	trueObj  *Object
	falseObj *Object
	typeName map[Tag]*Object
	nilName  *Object
}

// Bool returns the canonical static true or false object for v.
func (ev *evalContext) Bool(v bool) *Object {
	if v {
		return ev.trueObj
	}
	return ev.falseObj
}

// Eval implements §4.4's four-case dispatch.
func (ev *evalContext) Eval(expr *Object) (*Object, error) {
	// Case 1: the empty reference.
	if expr == nil {
		return nil, nil
	}

	switch expr.tag {
	case TagSymbol:
		// Case 3: symbol resolution through the scope chain.
		return ev.sc.Query(expr.s)

	case TagCell:
		return ev.evalCell(expr)

	default:
		// Case 2: every other atom evaluates to itself (new reference).
		return Ref(expr), nil
	}
}

func (ev *evalContext) evalCell(expr *Object) (*Object, error) {
	head, err := ev.Eval(expr.car)
	if err != nil {
		return nil, err
	}

	switch {
	case head != nil && head.tag == TagFunction:
		defer ev.h.Unref(head)
		return ev.applyFunction(head.params, expr.cdr, head.body)

	case head != nil && head.tag == TagBuiltin:
		defer ev.h.Unref(head)
		return head.fn(ev, expr.cdr, head.user)

	default:
		ev.h.Unref(head)
		if expr.car.IsCell() {
			return nil, newError(CodeBadArg, "non-atomic operator is not executable")
		}
		return nil, newError(CodeBadArg, "atomic operator is not executable")
	}
}

// applyFunction implements §4.4's apply_function: arguments are
// evaluated in the caller's scope and bound in a fresh child frame
// (§9: this makes the parent the call-time frame, not the definition
// site, so lambdas here are dynamically scoped, not true closures),
// body expressions run in order, and the last one's value is
// returned.
func (ev *evalContext) applyFunction(params, argCells, body *Object) (*Object, error) {
	if err := ev.sc.EnterWith(ev, params, argCells); err != nil {
		return nil, err
	}
	defer ev.sc.Pop()

	var result *Object
	for b := body; b != nil; b = b.cdr {
		ev.h.Unref(result)
		var err error
		result, err = ev.Eval(b.car)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
