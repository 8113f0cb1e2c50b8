package sclisp

// Interpreter is one embeddable instance: a callback table, the live
// scope chain, the last top-level result, and the last error (§3
// "Interpreter instance").
type Interpreter struct {
	cb  *Callbacks
	cfg *Config
	h   *heap
	sc  *scope
	ev  *evalContext

	lastResult *Object
	lastErr    *Error
}

// Init constructs an instance and installs the builtin library into
// the root scope (§6 entry point 1). A nil callbacks table gets
// DefaultCallbacks; a nil cfg gets NewConfig. Init returns CodeBadArg
// if a non-default table is missing a mandatory entry.
func Init(callbacks *Callbacks, cfg *Config) (*Interpreter, error) {
	if callbacks == nil {
		callbacks, _ = DefaultCallbacks()
	}
	if err := callbacks.validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = NewConfig()
	}

	h := &heap{cb: callbacks}
	sc := newScope(h)
	ev := &evalContext{h: h, sc: sc, cfg: cfg, cb: callbacks}

	ev.trueObj = h.newStatic(TagInteger)
	ev.trueObj.i = 1
	ev.falseObj = h.newStatic(TagInteger)
	ev.falseObj.i = 0
	ev.nilName = h.newStatic(TagString)
	ev.nilName.s = "nil"
	ev.typeName = map[Tag]*Object{}
	for _, tag := range []Tag{TagInteger, TagReal, TagString, TagSymbol, TagFunction, TagBuiltin, TagCell} {
		s := h.newStatic(TagString)
		s.s = tag.String()
		ev.typeName[tag] = s
	}

	installBuiltins(ev)

	return &Interpreter{cb: callbacks, cfg: cfg, h: h, sc: sc, ev: ev}, nil
}

// Destroy tears down the instance: releases the last-result, then
// unwinds the scope chain root-ward (§5 "Resource discipline").
func (in *Interpreter) Destroy() {
	in.h.Unref(in.lastResult)
	in.lastResult = nil
	for in.sc.top.parent != nil {
		in.sc.Pop()
	}
	// The root frame's bindings (builtins and any top-level sets)
	// are released directly since scope.Pop refuses to pop the root.
	for b := in.sc.top.head; b != nil; b = b.next {
		in.h.Unref(b.value)
	}
	in.sc.top.head = nil
}

// Eval parses the first complete expression in source and evaluates
// it (§4.7, §6 entry point 3). Trailing tokens are a de-facto comment
// mechanism and are ignored. The previous last-result is released and
// replaced; errstr/errmsg describe the outcome afterward.
func (in *Interpreter) Eval(source string) error {
	in.lastErr = nil

	r := newReader(in.h, source, in.cfg)
	expr, ok, err := r.ReadExpr()
	if err != nil {
		in.fail(err)
		return err
	}
	if !ok {
		in.h.Unref(in.lastResult)
		in.lastResult = nil
		return nil
	}

	result, err := in.ev.Eval(expr)
	in.h.Unref(expr)
	if err != nil {
		in.fail(err)
		return err
	}

	in.h.Unref(in.lastResult)
	in.lastResult = result
	return nil
}

func (in *Interpreter) fail(err error) {
	if e, ok := err.(*Error); ok {
		in.lastErr = e
	} else {
		in.lastErr = newError(codeOf(err), err.Error())
	}
	in.h.Unref(in.lastResult)
	in.lastResult = nil
}

// Errstr returns the static human string for a code (§6 entry point 4).
func Errstr(code Code) string { return code.String() }

// Errmsg returns the last error message, or "" if the last Eval
// succeeded (§6 entry point 5).
func (in *Interpreter) Errmsg() string {
	if in.lastErr == nil {
		return ""
	}
	return in.lastErr.Message
}

// LastErrorCode returns the code of the last Eval, CodeOK if it
// succeeded.
func (in *Interpreter) LastErrorCode() Code {
	if in.lastErr == nil {
		return CodeOK
	}
	return in.lastErr.Code
}

// Repr prints the last-result via the print callback followed by a
// newline, and returns the same rendered string (§6 entry point 8).
func (in *Interpreter) Repr() string {
	s := Repr(in.lastResult, in.cfg)
	in.cb.Print(StreamStdout, []byte(s+"\n"))
	return s
}

// RegisterUserFunc registers a native callback under name (§4.7, §6
// entry point 6). Passing a nil fn rebinds name to the empty
// reference, hiding any builtin of that name in the current frame.
func (in *Interpreter) RegisterUserFunc(name string, fn UserFunc, user any, dtor BuiltinDestructor) error {
	if fn == nil {
		in.sc.Set(name, nil)
		return nil
	}
	state := &userFuncState{ev: in.ev, fn: fn, user: user, dtor: dtor}
	obj := in.h.NewBuiltin(userFuncWrapper, state, userFuncDestructor)
	in.sc.Set(name, obj)
	return nil
}

// ScopeAPI returns the scope API table (§6 entry point 7).
func (in *Interpreter) ScopeAPI() *ScopeAPI {
	return &ScopeAPI{ev: in.ev}
}

// Config returns the instance's configuration, for embedders that
// want to inspect or tune implementation-defined knobs after Init.
func (in *Interpreter) Config() *Config { return in.cfg }
