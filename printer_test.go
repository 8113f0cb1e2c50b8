package sclisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReprAtoms(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}
	cfg := NewConfig()

	cases := []struct {
		obj      *Object
		expected string
	}{
		{nil, "nil"},
		{h.NewInteger(-7), "-7"},
		{h.NewReal(3.0), "3.0"},
		{h.NewReal(3.140000), "3.14"},
		{h.NewString("hi"), `"hi"`},
		{h.NewSymbol("foo"), "foo"},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, Repr(c.obj, cfg))
		h.Unref(c.obj)
	}
}

func TestReprProperAndImproperLists(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}
	cfg := NewConfig()

	proper := h.Cons(h.NewInteger(1), h.Cons(h.NewInteger(2), nil))
	require.Equal(t, "(1 2)", Repr(proper, cfg))
	h.Unref(proper)

	improper := h.Cons(h.NewInteger(1), h.NewInteger(2))
	require.Equal(t, "(1 . 2)", Repr(improper, cfg))
	h.Unref(improper)
}

func TestReprTruncatesAtOutputBudget(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}
	cfg := NewConfig()
	cfg.SetInt("printer.output_max", 5)

	s := h.NewString("abcdefghij")
	require.Equal(t, `"abcd`, Repr(s, cfg))
	h.Unref(s)
}

func TestFormatRealKeepsOneFractionalDigit(t *testing.T) {
	require.Equal(t, "3.0", formatReal(3))
	require.Equal(t, "3.14", formatReal(3.14))
	require.Equal(t, "-1.5", formatReal(-1.5))
}
