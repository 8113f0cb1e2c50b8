package sclisp

// UserFunc is the shape of a host-registered native callback. It is
// handed a FunctionAPI scoped to the current call and the opaque user
// pointer supplied at registration.
type UserFunc func(api *FunctionAPI, user any) error

// FunctionAPI is passed into each native callback invocation (§4.7).
// It lets the callback pull coerced, lazily-evaluated positional
// arguments and set a typed return value.
type FunctionAPI struct {
	ev     *evalContext
	args   *Object // raw, unevaluated argument cdr
	cache  map[int]*Object
	result *Object
	set    bool
}

func newFunctionAPI(ev *evalContext, args *Object) *FunctionAPI {
	return &FunctionAPI{ev: ev, args: args, cache: make(map[int]*Object)}
}

// nth evaluates (and caches) the i-th positional argument. A nil
// result is rejected outright: whether nil should be a legal argument
// to a user-registered callback is the §9 open question this package
// resolves as "no" (see DESIGN.md).
func (api *FunctionAPI) nth(i int) (*Object, error) {
	if v, ok := api.cache[i]; ok {
		return v, nil
	}
	cur := api.args
	for n := 0; n < i && cur.IsCell(); n++ {
		cur = cur.cdr
	}
	if !cur.IsCell() {
		return nil, newErrorf(CodeBadArg, "argument %d not supplied", i)
	}
	v, err := api.ev.Eval(cur.car)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, newError(CodeErr, "nil is not a legal argument to a native callback")
	}
	api.cache[i] = v
	return v, nil
}

// releaseArgs releases every evaluated, cached positional argument.
// The result (if any) is left untouched — its fate is the caller's
// decision (kept on success, released on failure).
func (api *FunctionAPI) releaseArgs() {
	for _, v := range api.cache {
		api.ev.h.Unref(v)
	}
}

// ArgInteger, ArgReal and ArgString evaluate the i-th positional
// argument and coerce it to the requested type.
func (api *FunctionAPI) ArgInteger(i int) (int64, error) {
	v, err := api.nth(i)
	if err != nil {
		return 0, err
	}
	return coerceInt(v)
}

func (api *FunctionAPI) ArgReal(i int) (float64, error) {
	v, err := api.nth(i)
	if err != nil {
		return 0, err
	}
	return coerceReal(v)
}

func (api *FunctionAPI) ArgString(i int) (string, error) {
	v, err := api.nth(i)
	if err != nil {
		return "", err
	}
	return coerceString(v, api.ev.cfg)
}

// ReturnInteger, ReturnReal and ReturnString set the wrapper's result.
// A later call overwrites (releasing) an earlier one.
func (api *FunctionAPI) ReturnInteger(v int64) {
	api.setResult(api.ev.h.NewInteger(v))
}

func (api *FunctionAPI) ReturnReal(v float64) {
	api.setResult(api.ev.h.NewReal(v))
}

func (api *FunctionAPI) ReturnString(v string) {
	api.setResult(api.ev.h.NewString(v))
}

func (api *FunctionAPI) setResult(v *Object) {
	if api.set {
		api.ev.h.Unref(api.result)
	}
	api.result = v
	api.set = true
}

// userFuncState is the opaque struct carried as a builtin's user
// pointer for a host-registered function: the user's callback, their
// own user pointer, an optional destructor, and the interpreter's
// evalContext so the wrapper can build a FunctionAPI per call.
type userFuncState struct {
	ev   *evalContext
	fn   UserFunc
	user any
	dtor BuiltinDestructor
}

func userFuncWrapper(ev *evalContext, args *Object, user any) (*Object, error) {
	state := user.(*userFuncState)
	api := newFunctionAPI(ev, args)
	err := state.fn(api, state.user)
	api.releaseArgs()
	if err != nil {
		ev.h.Unref(api.result)
		return nil, err
	}
	return api.result, nil
}

func userFuncDestructor(user any) {
	state := user.(*userFuncState)
	if state.dtor != nil {
		state.dtor(state.user)
	}
}

// ScopeAPI reads and writes named bindings from outside evaluation
// (§4.7). Get walks the scope chain innermost-to-root and coerces;
// Set always binds in the innermost frame.
type ScopeAPI struct {
	ev *evalContext
}

func (s *ScopeAPI) GetInteger(sym string) (int64, error) {
	v, err := s.ev.sc.Query(sym)
	if err != nil {
		return 0, err
	}
	defer s.ev.h.Unref(v)
	return coerceInt(v)
}

func (s *ScopeAPI) GetReal(sym string) (float64, error) {
	v, err := s.ev.sc.Query(sym)
	if err != nil {
		return 0, err
	}
	defer s.ev.h.Unref(v)
	return coerceReal(v)
}

func (s *ScopeAPI) GetString(sym string) (string, error) {
	v, err := s.ev.sc.Query(sym)
	if err != nil {
		return "", err
	}
	defer s.ev.h.Unref(v)
	return coerceString(v, s.ev.cfg)
}

func (s *ScopeAPI) SetInteger(sym string, v int64) {
	s.ev.sc.Set(sym, s.ev.h.NewInteger(v))
}

func (s *ScopeAPI) SetReal(sym string, v float64) {
	s.ev.sc.Set(sym, s.ev.h.NewReal(v))
}

func (s *ScopeAPI) SetString(sym string, v string) {
	s.ev.sc.Set(sym, s.ev.h.NewString(v))
}
