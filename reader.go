package sclisp

// Reader consumes a Lexer's token stream and builds an object tree,
// rewriting 'x as (quote x) (§4.2).
type Reader struct {
	h      *heap
	lex    *Lexer
	strict bool
	peeked *Token
}

func newReader(h *heap, source string, cfg *Config) *Reader {
	strict := true
	if cfg != nil {
		strict = cfg.GetBool("reader.strict_parens")
	}
	return &Reader{h: h, lex: NewLexer(source, cfg), strict: strict}
}

func (r *Reader) next() (Token, error) {
	if r.peeked != nil {
		t := *r.peeked
		r.peeked = nil
		return t, nil
	}
	return r.lex.Next()
}

func (r *Reader) peek() (Token, error) {
	if r.peeked == nil {
		t, err := r.lex.Next()
		if err != nil {
			return Token{}, err
		}
		r.peeked = &t
	}
	return *r.peeked, nil
}

// ReadExpr reads one complete top-level expression. It returns
// (nil, nil, io.EOF)-shaped behavior via a boolean: ok is false when
// the stream holds no further expression.
func (r *Reader) ReadExpr() (obj *Object, ok bool, err error) {
	tok, err := r.peek()
	if err != nil {
		return nil, false, err
	}
	if tok.Kind == TokEOF {
		return nil, false, nil
	}
	obj, err = r.readOne()
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

func (r *Reader) readOne() (*Object, error) {
	tok, err := r.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokEOF:
		return nil, newError(CodeBadArg, "unexpected end of input")
	case TokLParen:
		return r.readList()
	case TokRParen:
		if r.strict {
			return nil, newError(CodeBadArg, "unbalanced right parenthesis")
		}
		return nil, nil
	case TokQuote:
		inner, err := r.readOne()
		if err != nil {
			return nil, err
		}
		return r.quote(inner), nil
	case TokNil:
		return nil, nil
	case TokInteger:
		return r.h.NewInteger(tok.I), nil
	case TokReal:
		return r.h.NewReal(tok.R), nil
	case TokString:
		return r.h.NewString(tok.Text), nil
	case TokSymbol:
		return r.h.NewSymbol(tok.Text), nil
	default:
		return nil, newError(CodeBug, "lexer produced an unknown token kind")
	}
}

// quote builds (quote inner), consuming inner.
func (r *Reader) quote(inner *Object) *Object {
	sym := r.h.NewSymbol("quote")
	tail := r.h.Cons(inner, nil)
	return r.h.Cons(sym, tail)
}

// readList reads the elements of a parenthesized form already past
// its opening '(' and conses them into a right-nested proper list.
func (r *Reader) readList() (*Object, error) {
	var items []*Object
	for {
		tok, err := r.peek()
		if err != nil {
			releaseAll(r.h, items)
			return nil, err
		}
		if tok.Kind == TokEOF {
			if r.strict {
				releaseAll(r.h, items)
				return nil, newError(CodeBadArg, "unterminated list: missing ')'")
			}
			break
		}
		if tok.Kind == TokRParen {
			r.next()
			break
		}
		item, err := r.readOne()
		if err != nil {
			releaseAll(r.h, items)
			return nil, err
		}
		items = append(items, item)
	}

	var list *Object
	for i := len(items) - 1; i >= 0; i-- {
		list = r.h.Cons(items[i], list)
	}
	return list, nil
}

func releaseAll(h *heap, items []*Object) {
	for _, it := range items {
		h.Unref(it)
	}
}
