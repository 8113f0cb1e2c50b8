package sclisp

// binding is a (symbol, object, next) triple linked into a frame.
type binding struct {
	sym   string
	value *Object
	next  *binding
}

// frame is a parent-pointer association list. Only the innermost
// frame (the head of the interpreter's scope chain) is ever mutated
// by assignment; every outer frame, including the root, is read-only
// during a call (§4.3 invariant 2).
type frame struct {
	parent *frame
	head   *binding
}

// scope is the interpreter's live chain of frames plus the heap it
// uses to release bindings it pops.
type scope struct {
	h     *heap
	top   *frame
}

func newScope(h *heap) *scope {
	return &scope{h: h, top: &frame{}}
}

// Push installs a fresh, empty innermost frame on top of the chain.
func (s *scope) Push() {
	s.top = &frame{parent: s.top}
}

// Pop discards the innermost frame, releasing every binding's value
// through the heap.
func (s *scope) Pop() {
	f := s.top
	if f.parent == nil {
		panic("sclisp: scope.Pop called on the root frame")
	}
	for b := f.head; b != nil; {
		next := b.next
		s.h.Unref(b.value)
		b = next
	}
	s.top = f.parent
}

// Query walks the chain innermost-to-root and returns a bumped
// reference to the first binding found for sym, or CodeErr if sym is
// unbound anywhere in the chain (§4.3, §4.4 case 3).
func (s *scope) Query(sym string) (*Object, error) {
	for f := s.top; f != nil; f = f.parent {
		for b := f.head; b != nil; b = b.next {
			if b.sym == sym {
				return Ref(b.value), nil
			}
		}
	}
	return nil, newError(CodeErr, "scope query failed")
}

// Set searches only the innermost frame. If sym is already bound
// there, its old value is released and replaced; otherwise a new
// binding is prepended. Set consumes value (see heap.go's ownership
// convention).
func (s *scope) Set(sym string, value *Object) {
	for b := s.top.head; b != nil; b = b.next {
		if b.sym == sym {
			s.h.Unref(b.value)
			b.value = value
			return
		}
	}
	s.top.head = &binding{sym: sym, value: value, next: s.top.head}
}

// EnterWith pushes a new frame and pair-wise binds each parameter
// symbol to the evaluated value of the corresponding argument
// expression, evaluated in the scope as it stood before the push
// (i.e. the caller's scope — §4.4's apply_function step 1). Binding
// stops at the end of either list; a length mismatch is silently
// tolerated (§4.3, §9 "scope arity mismatches").
func (s *scope) EnterWith(ev *evalContext, params *Object, args *Object) error {
	bindings := make([]binding, 0, 4)
	p, a := params, args
	for p.IsCell() && a.IsCell() {
		psym := p.car
		if psym == nil || psym.tag != TagSymbol {
			return newError(CodeBadArg, "lambda parameter list must contain only symbols")
		}
		val, err := ev.Eval(a.car)
		if err != nil {
			for i := range bindings {
				s.h.Unref(bindings[i].value)
			}
			return err
		}
		bindings = append(bindings, binding{sym: psym.s, value: val})
		p = p.cdr
		a = a.cdr
	}

	s.Push()
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		s.top.head = &binding{sym: b.sym, value: b.value, next: s.top.head}
	}
	return nil
}
