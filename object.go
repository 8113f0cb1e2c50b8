package sclisp

// Tag identifies which of the object variants a value carries. Object
// is a tagged union in the sense described by the specification: one
// Go struct, one enum field, and only the payload fields relevant to
// the current tag are meaningful — the alternative (an interface with
// one struct type per variant) would scatter the refcounting and
// teardown logic that this package treats as a single concern.
type Tag int

const (
	TagInteger Tag = iota
	TagReal
	TagString
	TagSymbol
	TagFunction
	TagBuiltin
	TagCell
)

func (t Tag) String() string {
	switch t {
	case TagInteger:
		return "integer"
	case TagReal:
		return "real"
	case TagString:
		return "string"
	case TagSymbol:
		return "symbol"
	case TagFunction:
		return "function"
	case TagBuiltin:
		return "builtin"
	case TagCell:
		return "cell"
	default:
		return "unknown"
	}
}

// BuiltinFunc is the native callback shape for a builtin atom. It
// receives the raw, unevaluated argument cdr and is responsible for
// evaluating whatever of it needs evaluating — see eval.go.
type BuiltinFunc func(ev *evalContext, args *Object, user any) (*Object, error)

// BuiltinDestructor releases a builtin's user pointer when its last
// reference is dropped.
type BuiltinDestructor func(user any)

// refsStatic marks an object that is reused across calls (canonical
// true/false, type-name strings): Ref and Unref are no-ops on it, and
// equality against it is identity-based.
const refsStatic = -1

// Object is the universal value. nil *Object is the empty reference —
// simultaneously the empty list, boolean false, and the absent value
// (§3 of the specification) — so it is never separately allocated.
type Object struct {
	tag  Tag
	refs int32

	// integer / real
	i int64
	r float64

	// string / symbol
	s string

	// function: both fields are owned references
	params *Object
	body   *Object

	// builtin
	fn   BuiltinFunc
	user any
	dtor BuiltinDestructor

	// cell: both fields are owned references (nil allowed on either)
	car *Object
	cdr *Object

	// backing is the host-allocator-obtained buffer this object's
	// construction charged against Callbacks.Alloc/ZAlloc, kept alive
	// only so teardown can hand the same slice back to Callbacks.Free.
	backing []byte
}

// IsStatic reports whether o is one of the refcounting-exempt
// singletons (nil is not "static" in this sense; it simply isn't an
// object at all).
func (o *Object) IsStatic() bool { return o != nil && o.refs == refsStatic }

// Tag returns the object's variant tag. Callers must not call Tag on a
// nil reference; check for nil (the empty reference) first.
func (o *Object) Tag() Tag { return o.tag }

func (o *Object) IsCell() bool { return o != nil && o.tag == TagCell }
func (o *Object) IsAtom() bool { return o == nil || o.tag != TagCell }

// Truthy implements §3 invariant 4: nil, integer 0 and real 0.0 are
// false; everything else is true.
func (o *Object) Truthy() bool {
	if o == nil {
		return false
	}
	switch o.tag {
	case TagInteger:
		return o.i != 0
	case TagReal:
		return o.r != 0
	default:
		return true
	}
}

// Car and Cdr implement the list-primitive semantics directly on the
// object (car/cdr of a non-cell is the object itself / nil — §4.5).
func (o *Object) Car() *Object {
	if o.IsCell() {
		return o.car
	}
	return o
}

func (o *Object) Cdr() *Object {
	if o.IsCell() {
		return o.cdr
	}
	return nil
}

// AsInteger, AsReal, AsString expose raw payloads for callers that
// have already checked Tag(). They panic on tag mismatch because a
// mismatch at this layer is an internal bug (callers are expected to
// branch on Tag() first, the same discipline the evaluator and
// builtins use throughout this package).
func (o *Object) AsInteger() int64 {
	if o == nil || o.tag != TagInteger {
		panic("sclisp: AsInteger on non-integer object")
	}
	return o.i
}

func (o *Object) AsReal() float64 {
	if o == nil || o.tag != TagReal {
		panic("sclisp: AsReal on non-real object")
	}
	return o.r
}

func (o *Object) AsString() string {
	if o == nil || (o.tag != TagString && o.tag != TagSymbol) {
		panic("sclisp: AsString on non-string/symbol object")
	}
	return o.s
}

func (o *Object) Params() *Object { return o.params }
func (o *Object) Body() *Object   { return o.body }
