package sclisp

import "strconv"

// The embedder bridge's coercion table (§4.7): nil widens to zero for
// numeric targets, integer and real widen into each other, and a
// string is scanned in the target's own form first: as an integer,
// then a real, for an integer target; as a real, then an integer
// (base-prefixed), for a real target. Anything
// coerces to a string through the printer, except nil, which has no
// sensible string form and is rejected.

func coerceInt(o *Object) (int64, error) {
	if o == nil {
		return 0, nil
	}
	switch o.tag {
	case TagInteger:
		return o.i, nil
	case TagReal:
		return int64(o.r), nil
	case TagString:
		if iv, err := strconv.ParseInt(o.s, 0, 64); err == nil {
			return iv, nil
		}
		if rv, err := strconv.ParseFloat(o.s, 64); err == nil {
			return int64(rv), nil
		}
		return 0, newErrorf(CodeBadArg, "string %q does not coerce to an integer", o.s)
	default:
		return 0, newErrorf(CodeBadArg, "%s does not coerce to an integer", o.tag)
	}
}

func coerceReal(o *Object) (float64, error) {
	if o == nil {
		return 0, nil
	}
	switch o.tag {
	case TagReal:
		return o.r, nil
	case TagInteger:
		return float64(o.i), nil
	case TagString:
		if rv, err := strconv.ParseFloat(o.s, 64); err == nil {
			return rv, nil
		}
		if iv, err := strconv.ParseInt(o.s, 0, 64); err == nil {
			return float64(iv), nil
		}
		return 0, newErrorf(CodeBadArg, "string %q does not coerce to a real", o.s)
	default:
		return 0, newErrorf(CodeBadArg, "%s does not coerce to a real", o.tag)
	}
}

func coerceString(o *Object, cfg *Config) (string, error) {
	if o == nil {
		return "", newError(CodeErr, "nil does not coerce to a string")
	}
	if o.tag == TagString {
		return o.s, nil
	}
	return Repr(o, cfg), nil
}
