package sclisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}

	require.False(t, (*Object)(nil).Truthy())

	zero := h.NewInteger(0)
	require.False(t, zero.Truthy())
	h.Unref(zero)

	zeroR := h.NewReal(0.0)
	require.False(t, zeroR.Truthy())
	h.Unref(zeroR)

	one := h.NewInteger(1)
	require.True(t, one.Truthy())
	h.Unref(one)

	s := h.NewString("")
	require.True(t, s.Truthy(), "an empty string is still truthy")
	h.Unref(s)
}

func TestCarCdrOfNonCell(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}

	i := h.NewInteger(7)
	require.Same(t, i, i.Car(), "car of a non-cell returns the object itself")
	require.Nil(t, i.Cdr())
	h.Unref(i)

	require.Nil(t, (*Object)(nil).Car())
	require.Nil(t, (*Object)(nil).Cdr())
}

func TestCarCdrOfCell(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}

	cell := h.Cons(h.NewInteger(1), h.NewInteger(2))
	require.EqualValues(t, 1, cell.Car().AsInteger())
	require.EqualValues(t, 2, cell.Cdr().AsInteger())
	h.Unref(cell)
}

func TestIsAtomIsCell(t *testing.T) {
	cb, _ := DefaultCallbacks()
	h := &heap{cb: cb}

	cell := h.Cons(h.NewInteger(1), nil)
	require.True(t, cell.IsCell())
	require.False(t, cell.IsAtom())
	h.Unref(cell)

	i := h.NewInteger(1)
	require.False(t, i.IsCell())
	require.True(t, i.IsAtom())
	h.Unref(i)

	require.True(t, (*Object)(nil).IsAtom())
	require.False(t, (*Object)(nil).IsCell())
}

func TestTagString(t *testing.T) {
	require.Equal(t, "integer", TagInteger.String())
	require.Equal(t, "real", TagReal.String())
	require.Equal(t, "string", TagString.String())
	require.Equal(t, "symbol", TagSymbol.String())
	require.Equal(t, "function", TagFunction.String())
	require.Equal(t, "builtin", TagBuiltin.String())
	require.Equal(t, "cell", TagCell.String())
}
