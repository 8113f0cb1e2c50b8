package sclisp

import "math"

// evalList evaluates every element of a raw argument cdr, left to
// right (§5 "Ordering"), returning owned references. On error,
// everything evaluated so far is released before propagating.
func evalList(ev *evalContext, args *Object) ([]*Object, error) {
	var out []*Object
	for c := args; c != nil; c = c.cdr {
		if !c.IsCell() {
			break
		}
		v, err := ev.Eval(c.car)
		if err != nil {
			releaseVals(ev, out)
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func releaseVals(ev *evalContext, vals []*Object) {
	for _, v := range vals {
		ev.h.Unref(v)
	}
}

// borrowReturn returns a fresh owned reference to sub (a part of
// container, e.g. its car or cdr) and releases the caller's
// reference to container. Used by car/cdr, which hand back a piece of
// the object they were given rather than the object itself.
func borrowReturn(h *heap, container, sub *Object) *Object {
	r := Ref(sub)
	h.Unref(container)
	return r
}

// ---- numeric helpers ----

type numVal struct {
	isReal bool
	i      int64
	r      float64
}

func toNum(o *Object) (numVal, error) {
	if o == nil {
		return numVal{}, nil // nil operand treated as integer 0
	}
	switch o.tag {
	case TagInteger:
		return numVal{i: o.i}, nil
	case TagReal:
		return numVal{isReal: true, r: o.r}, nil
	default:
		return numVal{}, newErrorf(CodeBadArg, "expected a number, got %s", o.tag)
	}
}

func (n numVal) float() float64 {
	if n.isReal {
		return n.r
	}
	return float64(n.i)
}

func numToObject(h *heap, n numVal) *Object {
	if n.isReal {
		return h.NewReal(n.r)
	}
	return h.NewInteger(n.i)
}

func addNum(a, b numVal) numVal {
	if a.isReal || b.isReal {
		return numVal{isReal: true, r: a.float() + b.float()}
	}
	return numVal{i: a.i + b.i}
}

func subNum(a, b numVal) numVal {
	if a.isReal || b.isReal {
		return numVal{isReal: true, r: a.float() - b.float()}
	}
	return numVal{i: a.i - b.i}
}

func mulNum(a, b numVal) numVal {
	if a.isReal || b.isReal {
		return numVal{isReal: true, r: a.float() * b.float()}
	}
	return numVal{i: a.i * b.i}
}

func isZero(n numVal) bool {
	if n.isReal {
		return n.r == 0
	}
	return n.i == 0
}

func divNum(a, b numVal) (numVal, error) {
	if isZero(b) {
		return numVal{}, newError(CodeBadArg, "division by zero")
	}
	if a.isReal || b.isReal {
		return numVal{isReal: true, r: a.float() / b.float()}, nil
	}
	return numVal{i: a.i / b.i}, nil
}

func modNum(ev *evalContext, a, b numVal) (numVal, error) {
	if isZero(b) {
		return numVal{}, newError(CodeBadArg, "mod by zero")
	}
	if a.isReal || b.isReal {
		if ev.cfg != nil && !ev.cfg.GetBool("runtime.mod_float") {
			return numVal{}, newError(CodeUnsupported, "floating-point mod not supported by this build")
		}
		return numVal{isReal: true, r: math.Mod(a.float(), b.float())}, nil
	}
	return numVal{i: a.i % b.i}, nil
}

// foldArith evaluates args and folds combine over the values
// left-to-right, returning zeroArgs when there are no arguments.
// Non-numeric, non-nil operands yield CodeBadArg.
func foldArith(ev *evalContext, args *Object, zeroArgs numVal, combine func(a, b numVal) (numVal, error)) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	defer releaseVals(ev, vals)

	if len(vals) == 0 {
		return numToObject(ev.h, zeroArgs), nil
	}
	acc, err := toNum(vals[0])
	if err != nil {
		return nil, err
	}
	for _, v := range vals[1:] {
		n, err := toNum(v)
		if err != nil {
			return nil, err
		}
		acc, err = combine(acc, n)
		if err != nil {
			return nil, err
		}
	}
	return numToObject(ev.h, acc), nil
}

func biAdd(ev *evalContext, args *Object, _ any) (*Object, error) {
	return foldArith(ev, args, numVal{i: 0}, func(a, b numVal) (numVal, error) { return addNum(a, b), nil })
}

func biMul(ev *evalContext, args *Object, _ any) (*Object, error) {
	return foldArith(ev, args, numVal{i: 1}, func(a, b numVal) (numVal, error) { return mulNum(a, b), nil })
}

func biSub(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	defer releaseVals(ev, vals)

	switch len(vals) {
	case 0:
		return ev.h.NewInteger(0), nil
	case 1:
		n, err := toNum(vals[0])
		if err != nil {
			return nil, err
		}
		return numToObject(ev.h, subNum(numVal{}, n)), nil
	default:
		acc, err := toNum(vals[0])
		if err != nil {
			return nil, err
		}
		for _, v := range vals[1:] {
			n, err := toNum(v)
			if err != nil {
				return nil, err
			}
			acc = subNum(acc, n)
		}
		return numToObject(ev.h, acc), nil
	}
}

func biDiv(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	defer releaseVals(ev, vals)

	if len(vals) == 0 {
		return ev.h.NewInteger(0), nil
	}
	acc, err := toNum(vals[0])
	if err != nil {
		return nil, err
	}
	for _, v := range vals[1:] {
		n, err := toNum(v)
		if err != nil {
			return nil, err
		}
		acc, err = divNum(acc, n)
		if err != nil {
			return nil, err
		}
	}
	return numToObject(ev.h, acc), nil
}

func biMod(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	defer releaseVals(ev, vals)

	if len(vals) == 0 {
		return ev.h.NewInteger(0), nil
	}
	acc, err := toNum(vals[0])
	if err != nil {
		return nil, err
	}
	for _, v := range vals[1:] {
		n, err := toNum(v)
		if err != nil {
			return nil, err
		}
		acc, err = modNum(ev, acc, n)
		if err != nil {
			return nil, err
		}
	}
	return numToObject(ev.h, acc), nil
}

// ---- comparison ----

func stringRepr(ev *evalContext, o *Object) string {
	if o != nil && o.tag == TagString {
		return o.s
	}
	return Repr(o, ev.cfg)
}

func compareBuiltin(relation string) BuiltinFunc {
	return func(ev *evalContext, args *Object, _ any) (*Object, error) {
		vals, err := evalList(ev, args)
		if err != nil {
			return nil, err
		}
		defer releaseVals(ev, vals)
		if len(vals) != 2 {
			return nil, newErrorf(CodeBadArg, "%s requires exactly two arguments", relation)
		}
		a, b := vals[0], vals[1]

		if relation == "==" && a != nil && b != nil && a.IsStatic() && b.IsStatic() {
			return ev.Bool(a == b), nil
		}

		aStr := a != nil && a.tag == TagString
		bStr := b != nil && b.tag == TagString
		if aStr || bStr {
			return ev.Bool(compareStrings(relation, stringRepr(ev, a), stringRepr(ev, b))), nil
		}

		an, err := toNum(a)
		if err != nil {
			return nil, err
		}
		bn, err := toNum(b)
		if err != nil {
			return nil, err
		}
		return ev.Bool(compareFloats(relation, an.float(), bn.float())), nil
	}
}

func compareFloats(relation string, a, b float64) bool {
	switch relation {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default: // "=="
		return a == b
	}
}

func compareStrings(relation string, a, b string) bool {
	switch relation {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default: // "=="
		return a == b
	}
}

// ---- list primitives ----

func biCar(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "car requires exactly one argument")
	}
	v := vals[0]
	return borrowReturn(ev.h, v, v.Car()), nil
}

func biCdr(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "cdr requires exactly one argument")
	}
	v := vals[0]
	return borrowReturn(ev.h, v, v.Cdr()), nil
}

func biCons(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) < 1 || len(vals) > 2 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "cons takes one or two arguments")
	}
	car := vals[0]
	var cdr *Object
	if len(vals) == 2 {
		cdr = vals[1]
	}
	return ev.h.Cons(car, cdr), nil
}

func biList(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	var result *Object
	for i := len(vals) - 1; i >= 0; i-- {
		result = ev.h.Cons(vals[i], result)
	}
	return result, nil
}

func biReverse(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "reverse requires exactly one argument")
	}
	v := vals[0]
	defer ev.h.Unref(v)

	if v == nil {
		return nil, nil
	}
	if !v.IsCell() {
		return nil, newError(CodeBadArg, "reverse requires a list")
	}

	var items []*Object
	cur := v
	for cur.IsCell() {
		items = append(items, cur.car)
		cur = cur.cdr
	}
	tail := cur // nil, or the improper terminator atom

	if tail == nil {
		var result *Object
		for _, it := range items {
			result = ev.h.Cons(Ref(it), result)
		}
		return result, nil
	}

	// Improper list: spec only defines the single-pair case (a . b)
	// -> (b . a). For (a1 a2 ... an . t) the terminator t becomes the
	// first element and a1 the new terminator, while a2 ... an keep
	// their order: (t a2 ... an . a1) (see DESIGN.md).
	newTail := Ref(items[0])
	remaining := append([]*Object{tail}, items[1:]...)
	result := newTail
	for i := len(remaining) - 1; i >= 0; i-- {
		result = ev.h.Cons(Ref(remaining[i]), result)
	}
	return result, nil
}

func biEval(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "eval requires exactly one argument")
	}
	v := vals[0]
	defer ev.h.Unref(v)
	return ev.Eval(v)
}

// ---- control / special operators ----

func biQuote(ev *evalContext, args *Object, _ any) (*Object, error) {
	if !args.IsCell() {
		return nil, newError(CodeBadArg, "quote requires exactly one argument")
	}
	return Ref(args.car), nil
}

func biCond(ev *evalContext, args *Object, _ any) (*Object, error) {
	for c := args; c != nil; c = c.cdr {
		if !c.IsCell() || !c.car.IsCell() {
			return nil, newError(CodeBadArg, "cond clauses must be (test consequent) pairs")
		}
		clause := c.car
		testVal, err := ev.Eval(clause.car)
		if err != nil {
			return nil, err
		}
		truthy := testVal.Truthy()
		ev.h.Unref(testVal)
		if truthy {
			var consequent *Object
			if clause.cdr.IsCell() {
				consequent = clause.cdr.car
			}
			return ev.Eval(consequent)
		}
	}
	return nil, nil
}

func biAnd(ev *evalContext, args *Object, _ any) (*Object, error) {
	var result *Object
	for c := args; c != nil; c = c.cdr {
		if !c.IsCell() {
			ev.h.Unref(result)
			return nil, newError(CodeBadArg, "and requires a proper list of operands")
		}
		v, err := ev.Eval(c.car)
		if err != nil {
			ev.h.Unref(result)
			return nil, err
		}
		if !v.Truthy() {
			ev.h.Unref(result)
			return v, nil
		}
		ev.h.Unref(result)
		result = v
	}
	return result, nil
}

func biOr(ev *evalContext, args *Object, _ any) (*Object, error) {
	for c := args; c != nil; c = c.cdr {
		if !c.IsCell() {
			return nil, newError(CodeBadArg, "or requires a proper list of operands")
		}
		v, err := ev.Eval(c.car)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			return v, nil
		}
		ev.h.Unref(v)
	}
	return nil, nil
}

func biLambda(ev *evalContext, args *Object, _ any) (*Object, error) {
	if !args.IsCell() {
		return nil, newError(CodeBadArg, "lambda requires a parameter list")
	}
	params := args.car
	body := args.cdr
	return ev.h.NewFunction(Ref(params), Ref(body)), nil
}

func biSet(ev *evalContext, args *Object, _ any) (*Object, error) {
	if !args.IsCell() {
		return nil, newError(CodeBadArg, "set requires a target and a value")
	}
	target := args.car
	rest := args.cdr

	if target != nil && target.tag == TagSymbol {
		if !rest.IsCell() {
			return nil, newError(CodeBadArg, "(set name value) requires a value expression")
		}
		val, err := ev.Eval(rest.car)
		if err != nil {
			return nil, err
		}
		ev.sc.Set(target.s, Ref(val))
		return val, nil
	}

	if target.IsCell() {
		nameObj := target.car
		if nameObj == nil || nameObj.tag != TagSymbol {
			return nil, newError(CodeBadArg, "(set (name ...) ...) requires a symbol name")
		}
		params := target.cdr
		body := rest
		fn := ev.h.NewFunction(Ref(params), Ref(body))
		ev.sc.Set(nameObj.s, Ref(fn))
		return fn, nil
	}

	return nil, newError(CodeBadArg, "set requires a symbol or (name params...) target")
}

// ---- predicates & type introspection ----

func unaryPredicate(pred func(v *Object) bool) BuiltinFunc {
	return func(ev *evalContext, args *Object, _ any) (*Object, error) {
		vals, err := evalList(ev, args)
		if err != nil {
			return nil, err
		}
		if len(vals) != 1 {
			releaseVals(ev, vals)
			return nil, newError(CodeBadArg, "predicate requires exactly one argument")
		}
		v := vals[0]
		defer ev.h.Unref(v)
		return ev.Bool(pred(v)), nil
	}
}

func biTypeof(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "typeof requires exactly one argument")
	}
	v := vals[0]
	defer ev.h.Unref(v)
	if v == nil {
		return Ref(ev.nilName), nil
	}
	return Ref(ev.typeName[v.tag]), nil
}

// ---- I/O ----

func biPrintln(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "println requires exactly one argument")
	}
	v := vals[0]
	defer ev.h.Unref(v)
	if v == nil || v.tag != TagString {
		return nil, newError(CodeUnsupported, "println requires a string argument")
	}
	ev.cb.Print(StreamStdout, []byte(v.s+"\n"))
	return nil, nil
}

func biPrompt(ev *evalContext, args *Object, _ any) (*Object, error) {
	vals, err := evalList(ev, args)
	if err != nil {
		return nil, err
	}
	if len(vals) > 1 {
		releaseVals(ev, vals)
		return nil, newError(CodeBadArg, "prompt takes at most one argument")
	}
	if len(vals) == 1 {
		p := vals[0]
		if p != nil && p.tag == TagString {
			ev.cb.Print(StreamStdout, []byte(p.s))
		}
		ev.h.Unref(p)
	}
	if ev.cb.GetChar == nil {
		return nil, newError(CodeUnsupported, "prompt requires a getchar callback")
	}
	var buf []byte
	for {
		b, ok := ev.cb.GetChar()
		if !ok || b == '\n' {
			break
		}
		buf = append(buf, b)
	}
	return ev.h.NewString(string(buf)), nil
}

// installBuiltins populates the root frame at init (§4.5).
func installBuiltins(ev *evalContext) {
	set := func(name string, fn BuiltinFunc) {
		ev.sc.Set(name, ev.h.NewBuiltin(fn, nil, nil))
	}

	set("+", biAdd)
	set("-", biSub)
	set("*", biMul)
	set("/", biDiv)
	set("mod", biMod)

	set("<", compareBuiltin("<"))
	set("<=", compareBuiltin("<="))
	set(">", compareBuiltin(">"))
	set(">=", compareBuiltin(">="))
	set("==", compareBuiltin("=="))

	set("car", biCar)
	set("cdr", biCdr)
	set("cons", biCons)
	set("list", biList)
	set("reverse", biReverse)
	set("eval", biEval)

	set("quote", biQuote)
	set("cond", biCond)
	set("and", biAnd)
	set("or", biOr)
	set("lambda", biLambda)
	set("set", biSet)

	set("true?", unaryPredicate(func(v *Object) bool { return v.Truthy() }))
	set("false?", unaryPredicate(func(v *Object) bool { return !v.Truthy() }))
	set("atom?", unaryPredicate(func(v *Object) bool { return v.IsAtom() }))
	set("cell?", unaryPredicate(func(v *Object) bool { return v.IsCell() }))
	set("nil?", unaryPredicate(func(v *Object) bool { return v == nil }))

	set("typeof", biTypeof)
	set("println", biPrintln)
	set("prompt", biPrompt)

	ev.sc.Set("#t", Ref(ev.trueObj))
	ev.sc.Set("#f", Ref(ev.falseObj))
}
