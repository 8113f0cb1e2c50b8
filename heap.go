package sclisp

// heap owns the Callbacks table and is the sole place that
// constructs and tears down objects, so every allocation and every
// final release funnels through the host (§2, §5). Reference
// increments (Ref) only bump the object's count and do not reach the
// host.
type heap struct {
	cb *Callbacks
}

// approxSize is a nominal byte charge presented to the host
// allocator: a fixed 32-byte header plus extra (the payload length for
// strings and symbols, zero otherwise); the tag is not consulted.
// SCLisp objects are ordinary Go values managed by the Go runtime;
// this exists only so a host that counts bytes through Callbacks sees
// a plausible cost model.
func approxSize(tag Tag, extra int) int {
	const header = 32
	return header + extra
}

func (h *heap) alloc(tag Tag, extra int) *Object {
	buf := h.cb.zalloc(approxSize(tag, extra))
	return &Object{tag: tag, refs: 1, backing: buf}
}

func (h *heap) free(o *Object) {
	if o == nil || o.IsStatic() {
		return
	}
	h.cb.Free(o.backing)
}

// newStatic builds a refcounting-exempt singleton. It deliberately
// bypasses h.alloc/Callbacks.Alloc: a static is never freed, so
// charging the counting allocator for it would leave
// AllocCounters permanently out of balance by one per singleton
// (§8 "allocation count equals free count at destroy"). Ref/Unref
// treat it as a no-op.
func (h *heap) newStatic(tag Tag) *Object {
	return &Object{tag: tag, refs: refsStatic}
}

func (h *heap) NewInteger(v int64) *Object {
	o := h.alloc(TagInteger, 0)
	o.i = v
	return o
}

func (h *heap) NewReal(v float64) *Object {
	o := h.alloc(TagReal, 0)
	o.r = v
	return o
}

func (h *heap) NewString(v string) *Object {
	o := h.alloc(TagString, len(v))
	o.s = v
	return o
}

func (h *heap) NewSymbol(v string) *Object {
	o := h.alloc(TagSymbol, len(v))
	o.s = v
	return o
}

// NewFunction consumes (takes ownership of) params and body: pass
// Ref(x) at the call site if the caller needs to keep using its own
// reference afterward. This "stored reference consumes the caller's
// count" convention is used uniformly by every constructor in this
// file and by Cons, Scope.Set, and the builtins that build lists.
func (h *heap) NewFunction(params, body *Object) *Object {
	o := h.alloc(TagFunction, 0)
	o.params = params
	o.body = body
	return o
}

func (h *heap) NewBuiltin(fn BuiltinFunc, user any, dtor BuiltinDestructor) *Object {
	o := h.alloc(TagBuiltin, 0)
	o.fn = fn
	o.user = user
	o.dtor = dtor
	return o
}

// Cons consumes car and cdr.
func (h *heap) Cons(car, cdr *Object) *Object {
	o := h.alloc(TagCell, 0)
	o.car = car
	o.cdr = cdr
	return o
}

// Ref increments o's reference count and returns o, for use at call
// sites that need a second owned reference to a value they don't
// already own outright (a no-op, returning o unchanged, on nil or a
// static singleton).
func Ref(o *Object) *Object {
	if o == nil || o.IsStatic() {
		return o
	}
	o.refs++
	return o
}

// Unref releases one reference to o. At zero it runs variant-specific
// teardown (releasing owned sub-objects, invoking a builtin's
// destructor, freeing string/symbol/cell storage) and returns the
// backing allocation to the host. Safe on nil.
func (h *heap) Unref(o *Object) {
	if o == nil || o.IsStatic() {
		return
	}
	o.refs--
	if o.refs > 0 {
		return
	}
	switch o.tag {
	case TagFunction:
		h.Unref(o.params)
		h.Unref(o.body)
	case TagBuiltin:
		if o.dtor != nil {
			o.dtor(o.user)
		}
	case TagCell:
		h.Unref(o.car)
		h.Unref(o.cdr)
	}
	h.free(o)
}
